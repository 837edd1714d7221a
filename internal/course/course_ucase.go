package course

import (
	"context"

	"github.com/learnhub/learnhub/internal/domain"
	"go.elastic.co/apm"
)

// CourseUseCaseImpl ...
type CourseUseCaseImpl struct {
	CourseRepository   domain.CourseRepository
	ProgressRepository domain.ProgressRepository
}

var _ domain.CourseUseCase = &CourseUseCaseImpl{}

// NewCourseUseCase ...
func NewCourseUseCase(
	CourseRepository domain.CourseRepository,
	ProgressRepository domain.ProgressRepository,
) *CourseUseCaseImpl {
	return &CourseUseCaseImpl{CourseRepository, ProgressRepository}
}

// GetCourseLessons flatten the course tree into the canonical lesson order
// and join each lesson with the caller's watch state and gating decision
func (cu *CourseUseCaseImpl) GetCourseLessons(ctx context.Context, user *domain.UserModel, courseID string) ([]*domain.LessonState, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetCourseLessons", "service")
	defer apmSpan.End()

	lessons, byLesson, err := cu.loadCourseProgress(ctx, user, courseID)
	if err != nil {
		return nil, err
	}

	completed := func(lessonID string) bool {
		record, ok := byLesson[lessonID]
		return ok && record.Completed
	}
	states := make([]*domain.LessonState, len(lessons))
	for i, lesson := range lessons {
		state := &domain.LessonState{
			LessonModel: lesson,
			Unlocked:    Unlocked(lessons, completed, i),
		}
		if record, ok := byLesson[lesson.ID]; ok {
			state.WatchedSeconds = record.WatchedSeconds
			state.Completed = record.Completed
		}
		states[i] = state
	}
	return states, nil
}

// GetResumeLesson pick the lesson where playback should resume: the most
// recently written, not yet completed lesson of the course, falling back to
// the first incomplete lesson, then to the first lesson
func (cu *CourseUseCaseImpl) GetResumeLesson(ctx context.Context, user *domain.UserModel, courseID string) (*domain.ResumeModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetResumeLesson", "service")
	defer apmSpan.End()

	lessons, byLesson, err := cu.loadCourseProgress(ctx, user, courseID)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, nil
	}

	var latest *domain.ProgressModel
	var latestLesson *domain.LessonModel
	for _, lesson := range lessons {
		record, ok := byLesson[lesson.ID]
		if !ok || record.Completed || record.WatchedSeconds <= 0 {
			continue
		}
		if latest == nil || (record.UpdatedAt != nil && latest.UpdatedAt != nil && record.UpdatedAt.After(*latest.UpdatedAt)) {
			latest = record
			latestLesson = lesson
		}
	}
	if latestLesson != nil {
		return &domain.ResumeModel{Lesson: latestLesson, WatchedSeconds: latest.WatchedSeconds}, nil
	}

	for _, lesson := range lessons {
		if record, ok := byLesson[lesson.ID]; !ok || !record.Completed {
			return &domain.ResumeModel{Lesson: lesson}, nil
		}
	}
	return &domain.ResumeModel{Lesson: lessons[0]}, nil
}

func (cu *CourseUseCaseImpl) loadCourseProgress(ctx context.Context, user *domain.UserModel, courseID string) ([]*domain.LessonModel, map[string]*domain.ProgressModel, error) {
	courseDoc, err := cu.CourseRepository.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if courseDoc == nil {
		return nil, nil, domain.ErrNoSuchCourse
	}

	records, err := cu.ProgressRepository.GetProgressByUser(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	byLesson := make(map[string]*domain.ProgressModel, len(records))
	for _, record := range records {
		byLesson[record.LessonID] = record
	}
	return Flatten(courseDoc.Content), byLesson, nil
}
