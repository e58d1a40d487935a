package service

import (
	"math"
	"time"

	"kidlearn/internal/models"
)

const dateLayout = "2006-01-02"

// Aggregator turns progress records into the time-on-task estimates shown on
// the parent dashboard. No real session timing exists; minutes are derived
// from completed item counts.
type Aggregator struct {
	MinutesPerItem  float64
	DailyCapMinutes float64
	Location        *time.Location
}

// NewAggregator returns an aggregator, falling back to 2.5 minutes per item,
// a 60 minute daily cap and the local zone for zero values.
func NewAggregator(minutesPerItem, dailyCap float64, loc *time.Location) *Aggregator {
	if minutesPerItem <= 0 {
		minutesPerItem = 2.5
	}
	if dailyCap <= 0 {
		dailyCap = 60
	}
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{MinutesPerItem: minutesPerItem, DailyCapMinutes: dailyCap, Location: loc}
}

// WeekStart returns midnight on the Monday of the week containing now
func (a *Aggregator) WeekStart(now time.Time) time.Time {
	local := now.In(a.Location)
	offset := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, a.Location)
}

// WeeklyActivity returns seven buckets, Monday through Sunday of the current
// week. Each record counts only toward the calendar day of its last update.
func (a *Aggregator) WeeklyActivity(records []models.ProgressRecord, now time.Time) []models.DayActivity {
	itemsByDate := make(map[string]int, len(records))
	for _, r := range records {
		itemsByDate[r.UpdatedAt.In(a.Location).Format(dateLayout)] += r.CompletedCount()
	}

	monday := a.WeekStart(now)
	days := make([]models.DayActivity, 7)
	for i := range days {
		day := monday.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		items := itemsByDate[date]
		days[i] = models.DayActivity{
			Date:    date,
			Weekday: day.Weekday().String(),
			Items:   items,
			Minutes: a.DailyMinutes(items),
		}
	}
	return days
}

// DailyMinutes converts a day's completed items to capped minutes
func (a *Aggregator) DailyMinutes(items int) float64 {
	return math.Min(a.DailyCapMinutes, float64(items)*a.MinutesPerItem)
}

// WeeklyMinutes sums the buckets of a week
func WeeklyMinutes(days []models.DayActivity) float64 {
	var total float64
	for _, d := range days {
		total += d.Minutes
	}
	return total
}

// TotalSessionMinutes estimates time spent over all records, uncapped
func (a *Aggregator) TotalSessionMinutes(records []models.ProgressRecord) (items int, minutes float64) {
	for _, r := range records {
		items += r.CompletedCount()
	}
	return items, float64(items) * a.MinutesPerItem
}

// LevelSummaries reports completion for levels 1..levels of one activity type.
// Levels without a record get a placeholder with defaultTotal items.
func LevelSummaries(records []models.ProgressRecord, activityType string, levels, defaultTotal int) []models.LevelSummary {
	byLevel := make(map[int]models.ProgressRecord)
	for _, r := range records {
		if r.ActivityType == activityType {
			byLevel[r.Level] = r
		}
	}

	summaries := make([]models.LevelSummary, 0, levels)
	for level := 1; level <= levels; level++ {
		r, ok := byLevel[level]
		if !ok {
			summaries = append(summaries, models.LevelSummary{Level: level, Total: defaultTotal})
			continue
		}
		summaries = append(summaries, models.LevelSummary{
			Level:     level,
			Completed: r.CompletedCount(),
			Total:     r.TotalItems,
			Stars:     r.Stars,
			Ratio:     r.CompletionRatio(),
			Started:   true,
		})
	}
	return summaries
}
