package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/models"
)

func items(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

// Wednesday 2024-03-06 15:00 UTC
var wednesday = time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

func TestWeekStart(t *testing.T) {
	agg := NewAggregator(2.5, 60, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "monday", now: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), want: "2024-03-04"},
		{name: "wednesday", now: wednesday, want: "2024-03-04"},
		{name: "sunday", now: time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), want: "2024-03-04"},
		{name: "month boundary", now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), want: "2024-02-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agg.WeekStart(tt.now).Format(dateLayout))
		})
	}
}

func TestWeeklyActivityBoundaries(t *testing.T) {
	agg := NewAggregator(2.5, 60, time.UTC)
	lastSunday := time.Date(2024, 3, 3, 20, 0, 0, 0, time.UTC)

	records := []models.ProgressRecord{
		{ActivityType: models.ActivityReading, Level: 1, CompletedItems: items(10), UpdatedAt: lastSunday},
		{ActivityType: models.ActivityMath, Level: 1, CompletedItems: items(3), UpdatedAt: wednesday},
	}

	days := agg.WeeklyActivity(records, wednesday)
	require.Len(t, days, 7)
	assert.Equal(t, "Monday", days[0].Weekday)
	assert.Equal(t, "Sunday", days[6].Weekday)

	for i, d := range days {
		if i == 2 {
			assert.Equal(t, 3, d.Items)
			assert.InDelta(t, 7.5, d.Minutes, 1e-9)
			continue
		}
		assert.Zero(t, d.Minutes, "day %s", d.Date)
	}
	assert.InDelta(t, 7.5, WeeklyMinutes(days), 1e-9)
}

func TestWeeklyActivityDailyCap(t *testing.T) {
	agg := NewAggregator(2.5, 60, time.UTC)

	capped := agg.WeeklyActivity([]models.ProgressRecord{{CompletedItems: items(25), UpdatedAt: wednesday}}, wednesday)
	assert.InDelta(t, 60.0, capped[2].Minutes, 1e-9)

	// several records on the same day share the cap
	split := agg.WeeklyActivity([]models.ProgressRecord{
		{Level: 1, CompletedItems: items(20), UpdatedAt: wednesday},
		{Level: 2, CompletedItems: items(10), UpdatedAt: wednesday.Add(-time.Hour)},
	}, wednesday)
	assert.Equal(t, 30, split[2].Items)
	assert.InDelta(t, 60.0, split[2].Minutes, 1e-9)
}

func TestWeeklyActivityUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	agg := NewAggregator(2.5, 60, loc)

	// 02:00 UTC Thursday is still Wednesday evening at UTC-5
	updated := time.Date(2024, 3, 7, 2, 0, 0, 0, time.UTC)
	days := agg.WeeklyActivity([]models.ProgressRecord{{CompletedItems: items(4), UpdatedAt: updated}}, wednesday)
	assert.InDelta(t, 10.0, days[2].Minutes, 1e-9)
	assert.Zero(t, days[3].Minutes)
}

func TestTotalSessionMinutes(t *testing.T) {
	agg := NewAggregator(2.5, 60, time.UTC)
	records := []models.ProgressRecord{
		{CompletedItems: items(8), UpdatedAt: wednesday},
		{CompletedItems: items(3), UpdatedAt: wednesday.AddDate(0, -2, 0)},
		{CompletedItems: items(12), UpdatedAt: wednesday.AddDate(-1, 0, 0)},
	}

	n, minutes := agg.TotalSessionMinutes(records)
	assert.Equal(t, 23, n)
	assert.InDelta(t, 57.5, minutes, 1e-9)

	_, uncapped := agg.TotalSessionMinutes([]models.ProgressRecord{{CompletedItems: items(100)}})
	assert.InDelta(t, 250.0, uncapped, 1e-9)
}

func TestLevelSummaries(t *testing.T) {
	records := []models.ProgressRecord{
		{ActivityType: models.ActivityReading, Level: 2, CompletedItems: items(6), TotalItems: 12, Stars: 3},
		{ActivityType: models.ActivityMath, Level: 1, CompletedItems: items(5), TotalItems: 10, Stars: 5},
	}

	reading := LevelSummaries(records, models.ActivityReading, 6, 12)
	require.Len(t, reading, 6)
	assert.False(t, reading[0].Started)
	assert.Equal(t, 12, reading[0].Total)
	assert.True(t, reading[1].Started)
	assert.InDelta(t, 0.5, reading[1].Ratio, 1e-9)
	assert.Equal(t, 3, reading[1].Stars)

	math := LevelSummaries(records, models.ActivityMath, 3, 10)
	require.Len(t, math, 3)
	assert.Equal(t, 5, math[0].Completed)
}

func TestNewAggregatorDefaults(t *testing.T) {
	agg := NewAggregator(0, 0, nil)
	assert.Equal(t, 2.5, agg.MinutesPerItem)
	assert.Equal(t, 60.0, agg.DailyCapMinutes)
	assert.Equal(t, time.Local, agg.Location)
}
