package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProgressKeyRequired upsert or read called without owner or lesson identity
var ErrProgressKeyRequired = errors.New("Both user id and lesson id are required")

// ErrProgressConflict unique key constraint violation outside the upsert path
var ErrProgressConflict = errors.New("Progress record already exists for this lesson")

// ProgressModel per-user-per-lesson watch state. At most one record exists for
// a (UserID, LessonID) pair, enforced by a unique key at the storage layer.
type ProgressModel struct {
	ID             string     `json:"-"`
	UserID         string     `json:"-"`
	LessonID       string     `json:"lesson_id" validate:"required"`
	LessonTitle    string     `json:"lesson_title"`
	WatchedSeconds float64    `json:"watched_seconds" validate:"gte=0"`
	Completed      bool       `json:"completed"`
	UpdatedAt      *time.Time `json:"-"`
	Timestamp      int64      `json:"timestamp"`
}

// ZeroProgress the canonical "no progress yet" record for a lesson
func ZeroProgress(user *UserModel, lessonID string) *ProgressModel {
	p := &ProgressModel{LessonID: lessonID}
	if user != nil {
		p.UserID = user.ID
	}
	return p
}

type ProgressRepository interface {
	// UpsertProgress writes the record, creating it on first report. WatchedSeconds
	// and LessonTitle overwrite unconditionally, the caller is trusted to send the
	// furthest-known value. Completed only ever goes from false to true.
	UpsertProgress(ctx context.Context, post *ProgressModel) (*ProgressModel, error)
	// GetProgressByUserAndLesson returns nil when no record exists
	GetProgressByUserAndLesson(ctx context.Context, user *UserModel, lessonID string) (*ProgressModel, error)
	GetProgressByUser(ctx context.Context, user *UserModel) ([]*ProgressModel, error)
}

type ProgressUseCase interface {
	SaveProgress(ctx context.Context, user *UserModel, post *ProgressModel) (*ProgressModel, error)
	// GetLessonProgress maps an absent record to ZeroProgress, never an error
	GetLessonProgress(ctx context.Context, user *UserModel, lessonID string) (*ProgressModel, error)
	GetUserProgress(ctx context.Context, user *UserModel) ([]*ProgressModel, error)
}
