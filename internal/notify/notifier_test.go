package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_PublishReachesOnlySubscribedKind(t *testing.T) {
	n := New()

	var studyListEvents, visitedEvents []Event
	n.Subscribe(StudyListChanged, func(e Event) {
		studyListEvents = append(studyListEvents, e)
	})
	n.Subscribe(VisitedChanged, func(e Event) {
		visitedEvents = append(visitedEvents, e)
	})

	n.Publish(Event{Kind: StudyListChanged, Language: "fr", Payload: map[string]int{"chat": 1}})

	assert.Len(t, studyListEvents, 1)
	assert.Equal(t, "fr", studyListEvents[0].Language)
	assert.Empty(t, visitedEvents)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := New()

	calls := 0
	id := n.Subscribe(StudyListChanged, func(Event) { calls++ })
	n.Publish(Event{Kind: StudyListChanged})
	n.Unsubscribe(id)
	n.Publish(Event{Kind: StudyListChanged})

	assert.Equal(t, 1, calls)
}

func TestNotifier_UnsubscribeUnknownIDIsNoop(t *testing.T) {
	n := New()
	n.Unsubscribe(42)

	calls := 0
	n.Subscribe(VisitedChanged, func(Event) { calls++ })
	n.Publish(Event{Kind: VisitedChanged})
	assert.Equal(t, 1, calls)
}

func TestNotifier_MultipleSubscribersSameKind(t *testing.T) {
	n := New()

	first, second := 0, 0
	n.Subscribe(StudyResultsChanged, func(Event) { first++ })
	n.Subscribe(StudyResultsChanged, func(Event) { second++ })
	n.Publish(Event{Kind: StudyResultsChanged})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
