package stats

import (
	"context"
	"testing"
	"time"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatsRepository struct {
	watchTime []*domain.WatchTimeModel
	err       error
	at        *time.Time
}

func (s *stubStatsRepository) GetWatchTimeInWeekByUser(ctx context.Context, user *domain.UserModel, at *time.Time) ([]*domain.WatchTimeModel, error) {
	s.at = at
	return s.watchTime, s.err
}

func dayTS(t *testing.T, value string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &ts
}

func TestGetUserWatchTimeTimestampMapping(t *testing.T) {
	monday := dayTS(t, "2020-11-23")
	wednesday := dayTS(t, "2020-11-25")
	repo := &stubStatsRepository{watchTime: []*domain.WatchTimeModel{
		{Weekday: 0, WatchedSeconds: 600, TS: monday},
		{Weekday: 2, WatchedSeconds: 45, TS: wednesday},
	}}
	uc := NewStatsUseCase(repo)
	at := time.Now()

	watchTime, err := uc.GetUserWatchTime(context.TODO(), &domain.UserModel{ID: "u1"}, &at)

	require.NoError(t, err)
	require.Len(t, watchTime, 2)
	assert.Equal(t, monday.Unix()*1e3, watchTime[0].Timestamp)
	assert.Equal(t, wednesday.Unix()*1e3, watchTime[1].Timestamp)
	assert.Equal(t, &at, repo.at)
}

func TestGetUserWatchTimeNilTS(t *testing.T) {
	repo := &stubStatsRepository{watchTime: []*domain.WatchTimeModel{
		{Weekday: 4, WatchedSeconds: 120},
	}}
	uc := NewStatsUseCase(repo)
	at := time.Now()

	watchTime, err := uc.GetUserWatchTime(context.TODO(), &domain.UserModel{ID: "u1"}, &at)

	require.NoError(t, err)
	assert.Zero(t, watchTime[0].Timestamp)
}

func TestGetUserWatchTimeEmptyWeek(t *testing.T) {
	uc := NewStatsUseCase(&stubStatsRepository{})
	at := time.Now()

	watchTime, err := uc.GetUserWatchTime(context.TODO(), &domain.UserModel{ID: "u1"}, &at)

	require.NoError(t, err)
	assert.Empty(t, watchTime)
}
