package domain

import (
	"context"
	"errors"
)

// ErrNoSuchCourse course document missing
var ErrNoSuchCourse = errors.New("No such course")

// CourseShape discriminates the two content tree layouts
type CourseShape int

const (
	// ShapeLegacy flat modules -> videos layout
	ShapeLegacy CourseShape = iota
	// ShapeNested weeks -> days -> modules -> videos layout
	ShapeNested
)

type CourseVideo struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Duration     float64  `json:"duration"`
	ResourcesURL string   `json:"resourcesUrl,omitempty"`
	NotesURL     []string `json:"notesUrl,omitempty"`
}

type CourseModule struct {
	Title  string         `json:"title"`
	Videos []*CourseVideo `json:"videos"`
}

type CourseDay struct {
	Title   string          `json:"title"`
	Modules []*CourseModule `json:"modules"`
}

type CourseWeek struct {
	Title string       `json:"title"`
	Days  []*CourseDay `json:"days"`
}

// CourseContent tagged variant of the content tree. Exactly one of Weeks or
// Modules is populated, Shape tells which. Consumers must not branch on the
// raw fields, normalization goes through course.Flatten.
type CourseContent struct {
	Weeks   []*CourseWeek   `json:"weeks,omitempty"`
	Modules []*CourseModule `json:"modules,omitempty"`
}

// Shape reports which layout the document uses
func (cc *CourseContent) Shape() CourseShape {
	if len(cc.Weeks) > 0 {
		return ShapeNested
	}
	return ShapeLegacy
}

type CourseModel struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Content *CourseContent `json:"content"`
}

// LessonModel flattened projection of a video node, built fresh from the
// course document on each load and never persisted independently
type LessonModel struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	VideoURL  string   `json:"video_url"`
	Duration  float64  `json:"duration"`
	Resources string   `json:"resources,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// LessonState a lesson joined with the caller's watch state and the gating
// decision, the unit returned by the course lessons endpoint
type LessonState struct {
	*LessonModel
	WatchedSeconds float64 `json:"watched_seconds"`
	Completed      bool    `json:"completed"`
	Unlocked       bool    `json:"unlocked"`
}

// ResumeModel where playback should pick up within a course
type ResumeModel struct {
	Lesson         *LessonModel `json:"lesson"`
	WatchedSeconds float64      `json:"watched_seconds"`
}

type CourseRepository interface {
	// GetCourseByID returns nil when the course does not exist
	GetCourseByID(ctx context.Context, courseID string) (*CourseModel, error)
}

type CourseUseCase interface {
	GetCourseLessons(ctx context.Context, user *UserModel, courseID string) ([]*LessonState, error)
	GetResumeLesson(ctx context.Context, user *UserModel, courseID string) (*ResumeModel, error)
}
