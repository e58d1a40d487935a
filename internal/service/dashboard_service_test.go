package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/apperr"
	"kidlearn/internal/models"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db, nil, nop)
	progress := NewProgressService(db, 0, nop)
	achievements := NewAchievementService(db, nop)
	dash := NewDashboardService(db, NewAggregator(2.5, 60, time.UTC), LevelSizes{Reading: 12, Math: 10}, 6)

	today := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	lastSunday := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	dash.now = fixedClock(today)

	user := createUser(t, users, "Mia")

	record := func(at time.Time, typ string, level, n, stars int) {
		progress.now = fixedClock(at)
		_, err := progress.RecordProgress(ctx, ProgressInput{
			UserID: user.ID, ActivityType: typ, Level: intPtr(level), CompletedItems: items(n), Stars: stars,
		})
		require.NoError(t, err)
	}
	record(lastSunday, models.ActivityReading, 1, 8, 3)
	record(today, models.ActivityMath, 1, 3, 3)
	record(today.Add(-2*time.Hour), models.ActivityReading, 2, 12, 5)

	_, err := achievements.AwardAchievement(ctx, user.ID, AchievementInput{Title: "First Word", Icon: "star"})
	require.NoError(t, err)

	d, err := dash.Dashboard(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 11, d.User.TotalStars)
	require.Len(t, d.WeeklyActivity, 7)
	assert.Zero(t, d.WeeklyActivity[0].Minutes)
	// (3 + 12) * 2.5 = 37.5, under the cap
	assert.InDelta(t, 37.5, d.WeeklyActivity[2].Minutes, 1e-9)
	assert.InDelta(t, 37.5, d.WeeklyMinutes, 1e-9)
	assert.InDelta(t, 57.5, d.TotalMinutes, 1e-9)

	require.Len(t, d.Reading, 6)
	assert.InDelta(t, 1.0, d.Reading[1].Ratio, 1e-9)
	assert.Equal(t, 10, d.Reading[0].Total, "stored records keep the default total")
	assert.False(t, d.Reading[2].Started)
	assert.Equal(t, 12, d.Reading[2].Total, "unstarted reading levels show the placeholder total")
	require.Len(t, d.Math, 6)
	assert.Equal(t, 10, d.Math[3].Total)
	assert.Len(t, d.Achievements, 1)

	st, err := dash.SessionTime(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 23, st.CompletedItems)
	assert.InDelta(t, 57.5, st.Minutes, 1e-9)

	week, err := dash.WeeklyActivity(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, d.WeeklyActivity, week)

	_, err = dash.Dashboard(ctx, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
