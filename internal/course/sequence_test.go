package course

import (
	"testing"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func video(id string) *domain.CourseVideo {
	return &domain.CourseVideo{ID: id, Title: "Lesson " + id, URL: "https://cdn.example.com/" + id + ".mp4", Duration: 300}
}

func nestedContent() *domain.CourseContent {
	return &domain.CourseContent{
		Weeks: []*domain.CourseWeek{
			{
				Title: "Week 1",
				Days: []*domain.CourseDay{
					{
						Title: "Day 1",
						Modules: []*domain.CourseModule{
							{Title: "Intro", Videos: []*domain.CourseVideo{video("A"), video("B")}},
						},
					},
				},
			},
			{
				Title: "Week 2",
				Days: []*domain.CourseDay{
					{
						Title: "Day 1",
						Modules: []*domain.CourseModule{
							{Title: "Advanced", Videos: []*domain.CourseVideo{video("C")}},
						},
					},
				},
			},
		},
	}
}

func TestFlattenNestedShape(t *testing.T) {
	lessons := Flatten(nestedContent())

	require.Len(t, lessons, 3)
	assert.Equal(t, "A", lessons[0].ID)
	assert.Equal(t, "B", lessons[1].ID)
	assert.Equal(t, "C", lessons[2].ID)
}

func TestFlattenLegacyShape(t *testing.T) {
	content := &domain.CourseContent{
		Modules: []*domain.CourseModule{
			{Title: "Part 1", Videos: []*domain.CourseVideo{video("A"), video("B")}},
			{Title: "Part 2", Videos: []*domain.CourseVideo{video("C")}},
		},
	}
	require.Equal(t, domain.ShapeLegacy, content.Shape())

	lessons := Flatten(content)

	require.Len(t, lessons, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{lessons[0].ID, lessons[1].ID, lessons[2].ID})
}

func TestFlattenKeepsDocumentOrder(t *testing.T) {
	// array order is canonical, no re-sorting by title or id
	content := &domain.CourseContent{
		Modules: []*domain.CourseModule{
			{Videos: []*domain.CourseVideo{video("z"), video("a"), video("m")}},
		},
	}
	lessons := Flatten(content)

	assert.Equal(t, []string{"z", "a", "m"}, []string{lessons[0].ID, lessons[1].ID, lessons[2].ID})
}

func TestFlattenNilAndEmpty(t *testing.T) {
	assert.Nil(t, Flatten(nil))
	assert.Empty(t, Flatten(&domain.CourseContent{}))
}

func TestFlattenProjectsVideoFields(t *testing.T) {
	content := &domain.CourseContent{
		Modules: []*domain.CourseModule{{
			Videos: []*domain.CourseVideo{{
				ID:           "A",
				Title:        "Getting started",
				URL:          "https://cdn.example.com/a.mp4",
				Duration:     412,
				ResourcesURL: "https://cdn.example.com/a.zip",
				NotesURL:     []string{"https://cdn.example.com/a.pdf"},
			}},
		}},
	}
	lessons := Flatten(content)

	require.Len(t, lessons, 1)
	assert.Equal(t, "Getting started", lessons[0].Title)
	assert.Equal(t, "https://cdn.example.com/a.mp4", lessons[0].VideoURL)
	assert.Equal(t, float64(412), lessons[0].Duration)
	assert.Equal(t, "https://cdn.example.com/a.zip", lessons[0].Resources)
	assert.Equal(t, []string{"https://cdn.example.com/a.pdf"}, lessons[0].Notes)
}

func TestUnlockedGating(t *testing.T) {
	lessons := Flatten(nestedContent())
	completed := map[string]bool{"A": true}
	lookup := func(id string) bool { return completed[id] }

	// first lesson always unlocked
	assert.True(t, Unlocked(lessons, lookup, 0))
	// A completed, B reachable
	assert.True(t, Unlocked(lessons, lookup, 1))
	// B not completed, C gated
	assert.False(t, Unlocked(lessons, lookup, 2))
	// out of range
	assert.False(t, Unlocked(lessons, lookup, 3))
	assert.False(t, Unlocked(lessons, lookup, -1))
}

func TestUnlockStates(t *testing.T) {
	lessons := Flatten(nestedContent())
	lookup := func(id string) bool { return id == "A" }

	assert.Equal(t, []bool{true, true, false}, UnlockStates(lessons, lookup))
}

func TestUnlockedNoProgress(t *testing.T) {
	lessons := Flatten(nestedContent())
	lookup := func(string) bool { return false }

	assert.Equal(t, []bool{true, false, false}, UnlockStates(lessons, lookup))
}
