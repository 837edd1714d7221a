package stats

import (
	"context"
	"time"

	"github.com/learnhub/learnhub/internal/domain"
	"go.elastic.co/apm"
)

// StatsUseCaseImpl ...
type StatsUseCaseImpl struct {
	StatsRepository domain.StatsRepository
}

var _ domain.StatsUseCase = &StatsUseCaseImpl{}

// NewStatsUseCase ...
func NewStatsUseCase(
	StatsRepository domain.StatsRepository,
) *StatsUseCaseImpl {
	return &StatsUseCaseImpl{StatsRepository}
}

// GetUserWatchTime get watched seconds per day for the dashboard chart
//
// at must be in RFC3339 layout
func (su *StatsUseCaseImpl) GetUserWatchTime(ctx context.Context, user *domain.UserModel, at *time.Time) ([]*domain.WatchTimeModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "StatsUseCaseImpl.GetUserWatchTime", "service")
	defer apmSpan.End()

	watchTime, err := su.StatsRepository.GetWatchTimeInWeekByUser(ctx, user, at)
	if err != nil {
		return nil, err
	}
	for _, e := range watchTime {
		if e.TS != nil {
			e.Timestamp = e.TS.Unix() * 1e3 // milliseconds
		}
	}
	return watchTime, nil
}
