// Package report renders study statistics as a markdown document and
// optionally converts it to PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/stats"
)

// Data bundles the aggregations a report is built from.
type Data struct {
	Language      string
	GeneratedAt   time.Time
	CardCount     int
	Coverage      []stats.LevelCoverage
	Hourly        []stats.HourAccuracy
	StudyCalendar []stats.StudyDay
	AddedCalendar []stats.AddedDay
	Legend        []string
}

// Markdown renders the report document.
func Markdown(data Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Study report (%s)\n\n", data.Language)
	fmt.Fprintf(&b, "Generated %s. Cards in study list: %d.\n\n", data.GeneratedAt.Format("2006-01-02"), data.CardCount)

	b.WriteString("## Level coverage\n\n")
	b.WriteString("| Level | Studied | Visited | Total |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, level := range data.Coverage {
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", levelLabel(data.Legend, level.Level), level.Studied, level.Visited, level.Total)
	}
	b.WriteString("\n")

	b.WriteString("## Accuracy by hour\n\n")
	b.WriteString("| Hour | Correct | Incorrect | Accuracy |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, hour := range data.Hourly {
		if hour.Count == 0 {
			fmt.Fprintf(&b, "| %02d:00 | 0 | 0 | no data |\n", hour.Hour)
			continue
		}
		fmt.Fprintf(&b, "| %02d:00 | %d | %d | %d%% |\n", hour.Hour, hour.Correct, hour.Incorrect, *hour.Percent)
	}
	b.WriteString("\n")

	b.WriteString("## Recent study activity\n\n")
	for _, day := range recentActive(data.StudyCalendar, 14) {
		fmt.Fprintf(&b, "- %s: %d reviews (%d right, %d wrong)\n",
			day.Date.Format("2006-01-02"), day.Total, day.Correct, day.Incorrect)
	}
	b.WriteString("\n## Recently added cards\n\n")
	for _, day := range recentAdded(data.AddedCalendar, 14) {
		line := fmt.Sprintf("- %s: %d cards added", day.Date.Format("2006-01-02"), day.Total)
		if len(day.NewWords) > 0 {
			line += fmt.Sprintf(" (new words: %s)", strings.Join(day.NewWords, ", "))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// levelLabel prefers the configured legend name for a level and falls back
// to the numeric level for out-of-range entries.
func levelLabel(legend []string, level int) string {
	if level >= 1 && level <= len(legend) {
		return legend[level-1]
	}
	return fmt.Sprintf("Level %d", level)
}

func recentActive(days []stats.StudyDay, limit int) []stats.StudyDay {
	var active []stats.StudyDay
	for _, day := range days {
		if day.Total > 0 {
			active = append(active, day)
		}
	}
	if len(active) > limit {
		active = active[len(active)-limit:]
	}
	return active
}

func recentAdded(days []stats.AddedDay, limit int) []stats.AddedDay {
	var active []stats.AddedDay
	for _, day := range days {
		if day.Total > 0 {
			active = append(active, day)
		}
	}
	if len(active) > limit {
		active = active[len(active)-limit:]
	}
	return active
}
