package course

import (
	"github.com/learnhub/learnhub/internal/domain"
)

// Flatten walk the content tree depth-first and project every video node into
// the ordered lesson list. Array order in the document is the canonical lesson
// order, no re-sorting happens here. Both content shapes normalize through
// this single function.
func Flatten(content *domain.CourseContent) []*domain.LessonModel {
	if content == nil {
		return nil
	}
	var lessons []*domain.LessonModel
	if content.Shape() == domain.ShapeNested {
		for _, week := range content.Weeks {
			for _, day := range week.Days {
				for _, module := range day.Modules {
					lessons = appendVideos(lessons, module.Videos)
				}
			}
		}
		return lessons
	}
	for _, module := range content.Modules {
		lessons = appendVideos(lessons, module.Videos)
	}
	return lessons
}

func appendVideos(lessons []*domain.LessonModel, videos []*domain.CourseVideo) []*domain.LessonModel {
	for _, video := range videos {
		lessons = append(lessons, &domain.LessonModel{
			ID:        video.ID,
			Title:     video.Title,
			VideoURL:  video.URL,
			Duration:  video.Duration,
			Resources: video.ResourcesURL,
			Notes:     video.NotesURL,
		})
	}
	return lessons
}

// Unlocked reports whether the lesson at index may be navigated to. The first
// lesson is always unlocked, every later one requires its predecessor to be
// completed according to the supplied lookup.
func Unlocked(lessons []*domain.LessonModel, completed func(lessonID string) bool, index int) bool {
	if index < 0 || index >= len(lessons) {
		return false
	}
	if index == 0 {
		return true
	}
	return completed(lessons[index-1].ID)
}

// UnlockStates compute the gating decision for every lesson in order
func UnlockStates(lessons []*domain.LessonModel, completed func(lessonID string) bool) []bool {
	states := make([]bool, len(lessons))
	for i := range lessons {
		states[i] = Unlocked(lessons, completed, i)
	}
	return states
}
