package progress

import (
	"context"

	"github.com/learnhub/learnhub/internal/domain"
	"go.elastic.co/apm"
)

// ProgressUseCaseImpl ...
type ProgressUseCaseImpl struct {
	ProgressRepository domain.ProgressRepository
}

var _ domain.ProgressUseCase = &ProgressUseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	ProgressRepository domain.ProgressRepository,
) *ProgressUseCaseImpl {
	return &ProgressUseCaseImpl{ProgressRepository}
}

// SaveProgress upsert the watch state for the lesson. The store trusts the
// caller to send the furthest-known watched_seconds, monotonicity is enforced
// by the playback tracker on the client, not here.
func (pu *ProgressUseCaseImpl) SaveProgress(ctx context.Context, user *domain.UserModel, post *domain.ProgressModel) (*domain.ProgressModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.SaveProgress", "service")
	defer apmSpan.End()

	if user == nil || user.ID == "" || post.LessonID == "" {
		return nil, domain.ErrProgressKeyRequired
	}

	post.UserID = user.ID
	record, err := pu.ProgressRepository.UpsertProgress(ctx, post)
	if err != nil {
		return nil, err
	}
	if record.UpdatedAt != nil {
		record.Timestamp = record.UpdatedAt.Unix() * 1e3 // milliseconds
	}
	return record, nil
}

// GetLessonProgress point read. An absent record means "no progress yet" and
// maps to the zero-value default, not an error.
func (pu *ProgressUseCaseImpl) GetLessonProgress(ctx context.Context, user *domain.UserModel, lessonID string) (*domain.ProgressModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.GetLessonProgress", "service")
	defer apmSpan.End()

	if user == nil || user.ID == "" || lessonID == "" {
		return nil, domain.ErrProgressKeyRequired
	}

	record, err := pu.ProgressRepository.GetProgressByUserAndLesson(ctx, user, lessonID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return domain.ZeroProgress(user, lessonID), nil
	}
	if record.UpdatedAt != nil {
		record.Timestamp = record.UpdatedAt.Unix() * 1e3 // milliseconds
	}
	return record, nil
}

// GetUserProgress all records of the learner, no guaranteed order
func (pu *ProgressUseCaseImpl) GetUserProgress(ctx context.Context, user *domain.UserModel) ([]*domain.ProgressModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.GetUserProgress", "service")
	defer apmSpan.End()

	records, err := pu.ProgressRepository.GetProgressByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	for _, e := range records {
		if e.UpdatedAt != nil {
			e.Timestamp = e.UpdatedAt.Unix() * 1e3 // milliseconds
		}
	}
	return records, nil
}
