package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/trie"
)

// Intensity labels form a monotonic ladder over a day's activity total. UI
// tests assert on these labels, so the bucketing is part of the contract.
const (
	IntensityEmpty  = "empty"
	IntensitySmall  = "s"
	IntensityMedium = "m"
	IntensityLarge  = "l"
	IntensityXL     = "xl"
	IntensityXXL    = "xxl"
	IntensityEpic   = "epic"
)

// StudyIntensity buckets a day's review total for the study calendar.
func StudyIntensity(total int) string {
	return ladder(total, [5]int{10, 25, 50, 100, 150})
}

// AddedIntensity buckets a day's added-card total for the added calendar.
func AddedIntensity(total int) string {
	return ladder(total, [5]int{6, 12, 18, 24, 30})
}

func ladder(total int, thresholds [5]int) string {
	switch {
	case total == 0:
		return IntensityEmpty
	case total < thresholds[0]:
		return IntensitySmall
	case total < thresholds[1]:
		return IntensityMedium
	case total < thresholds[2]:
		return IntensityLarge
	case total < thresholds[3]:
		return IntensityXL
	case total < thresholds[4]:
		return IntensityXXL
	default:
		return IntensityEpic
	}
}

// StudyDay is one cell of the study-result calendar.
type StudyDay struct {
	Date      time.Time `json:"date"`
	Total     int       `json:"total"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	// Result is correct minus incorrect, the day's net score.
	Result    int    `json:"result"`
	Intensity string `json:"intensity"`
}

// StudyCalendar lays the daily result buckets out as a contiguous grid:
// every date from the floor through a week past today gets an entry, with
// zero-days filled in so the calendar renders without holes. The floor is a
// year back, or the first studied day if that is older. Dates are normalized
// to UTC midnight for grid layout; the buckets themselves were recorded
// against the local calendar.
func StudyCalendar(daily map[string]results.Counts, now time.Time) []StudyDay {
	days := make([]StudyDay, 0, len(daily))
	for day, counts := range daily {
		date, err := parseISODate(day)
		if err != nil {
			continue
		}
		days = append(days, StudyDay{
			Date:      date,
			Total:     counts.Total(),
			Correct:   counts.Correct,
			Incorrect: counts.Incorrect,
			Result:    counts.Correct - counts.Incorrect,
			Intensity: StudyIntensity(counts.Total()),
		})
	}

	for _, date := range gapDates(dayDates(days), keysOf(daily), now) {
		days = append(days, StudyDay{Date: date, Intensity: IntensityEmpty})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// AddedDay is one cell of the cards-added calendar.
type AddedDay struct {
	Date  time.Time `json:"date"`
	Total int       `json:"total"`
	// NewWords are the target tokens first introduced by cards added that
	// day: a token counts as new only the first time it appears scanning
	// records in creation order, so a word covered by several cards is not
	// counted twice.
	NewWords  []string `json:"newWords,omitempty"`
	Intensity string   `json:"intensity"`
}

// AddedCalendar buckets card-creation timestamps into local dates with the
// same gap filling as the study calendar. Records with no creation timestamp
// (imported from old data) sort first: they seed the seen-word set without
// producing a calendar day.
func AddedCalendar(records map[string]studylist.Record, ix *trie.Index, now time.Time) []AddedDay {
	sorted := make([]studylist.Record, 0, len(records))
	for _, record := range records {
		sorted = append(sorted, record)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Added < sorted[j].Added })

	type bucket struct {
		total    int
		newWords []string
	}
	byDay := map[string]*bucket{}
	seen := map[string]struct{}{}
	for _, record := range sorted {
		if record.Added == 0 {
			for _, token := range record.Target {
				word := strings.ToLower(token)
				if _, ok := ix.Level(word); ok {
					seen[word] = struct{}{}
				}
			}
			continue
		}
		day := results.LocalISODate(time.UnixMilli(record.Added))
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.total++
		for _, token := range record.Target {
			word := strings.ToLower(token)
			if _, known := ix.Level(word); !known {
				continue
			}
			if _, already := seen[word]; already {
				continue
			}
			seen[word] = struct{}{}
			b.newWords = append(b.newWords, word)
		}
	}

	days := make([]AddedDay, 0, len(byDay))
	existing := map[string]struct{}{}
	for day, b := range byDay {
		date, err := parseISODate(day)
		if err != nil {
			continue
		}
		existing[day] = struct{}{}
		sort.Strings(b.newWords)
		days = append(days, AddedDay{
			Date:      date,
			Total:     b.total,
			NewWords:  b.newWords,
			Intensity: AddedIntensity(b.total),
		})
	}

	for _, date := range gapDates(addedDayDates(days), existing, now) {
		days = append(days, AddedDay{Date: date, Intensity: IntensityEmpty})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// gapDates returns the zero-entry dates needed to make the calendar window
// contiguous: from max(365 days back, first activity) through today+7. A
// candidate date is missing when its UTC ISO form has no bucket.
func gapDates(bucketDates []time.Time, existing map[string]struct{}, now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	first := today
	for _, date := range bucketDates {
		if date.Before(first) {
			first = date
		}
	}

	floor := today.AddDate(0, 0, -365)
	if first.Before(floor) {
		floor = first
	}
	end := today.AddDate(0, 0, 7)

	var gaps []time.Time
	for date := floor; !date.After(end); date = date.AddDate(0, 0, 1) {
		if _, ok := existing[date.UTC().Format("2006-01-02")]; !ok {
			gaps = append(gaps, date)
		}
	}
	return gaps
}

func parseISODate(day string) (time.Time, error) {
	return time.Parse("2006-01-02", day)
}

func dayDates(days []StudyDay) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Date)
	}
	return dates
}

func addedDayDates(days []AddedDay) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Date)
	}
	return dates
}

func keysOf(daily map[string]results.Counts) map[string]struct{} {
	keys := make(map[string]struct{}, len(daily))
	for day := range daily {
		keys[day] = struct{}{}
	}
	return keys
}
