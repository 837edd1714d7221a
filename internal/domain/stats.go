package domain

import (
	"context"
	"time"
)

// WatchTimeModel per-day watched-seconds aggregation for dashboard charts
type WatchTimeModel struct {
	UserID         string     `json:"-"`
	Weekday        int        `json:"weekday"`
	WatchedSeconds float64    `json:"watched_seconds"`
	TS             *time.Time `json:"-"`
	Timestamp      int64      `json:"timestamp"`
}

type StatsRepository interface {
	GetWatchTimeInWeekByUser(ctx context.Context, user *UserModel, at *time.Time) ([]*WatchTimeModel, error)
}

type StatsUseCase interface {
	GetUserWatchTime(ctx context.Context, user *UserModel, at *time.Time) ([]*WatchTimeModel, error)
}
