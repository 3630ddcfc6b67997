package stats

import (
	"math"

	"github.com/mreichhoff/TrieLingual/internal/results"
)

// HourAccuracy is one hour-of-day's review tally. Percent is nil when the
// hour has never been studied: an hour with no data is not an hour with 0%
// accuracy.
type HourAccuracy struct {
	Hour      int  `json:"hour"`
	Correct   int  `json:"correct"`
	Incorrect int  `json:"incorrect"`
	Count     int  `json:"count"`
	Percent   *int `json:"percent,omitempty"`
}

// HourlyAccuracy expands the sparse hourly buckets into all 24 hours with
// correct percentages where data exists.
func HourlyAccuracy(hourly map[int]results.Counts) []HourAccuracy {
	hours := make([]HourAccuracy, 24)
	for hour := 0; hour < 24; hour++ {
		counts := hourly[hour]
		entry := HourAccuracy{
			Hour:      hour,
			Correct:   counts.Correct,
			Incorrect: counts.Incorrect,
			Count:     counts.Total(),
		}
		if entry.Count > 0 {
			percent := int(math.Round(100 * float64(counts.Correct) / float64(entry.Count)))
			entry.Percent = &percent
		}
		hours[hour] = entry
	}
	return hours
}
