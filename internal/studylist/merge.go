package studylist

// MergeStudyLists reconciles two divergent study-list snapshots, e.g. from
// two devices syncing through a shared store. For each key in incoming, the
// incoming record wins when the key is absent locally or when it has seen at
// least as many review attempts as the local record; the tie deliberately
// goes to incoming. This is last-writer-wins-by-effort, not a CRDT —
// concurrent edits with equal attempt counts are not merged field by field.
func MergeStudyLists(base, incoming map[string]Record) map[string]Record {
	merged := make(map[string]Record, len(base)+len(incoming))
	for key, record := range base {
		merged[key] = record
	}
	for key, record := range incoming {
		local, exists := merged[key]
		if !exists || local.Attempts() <= record.Attempts() {
			merged[key] = record
		}
	}
	return merged
}
