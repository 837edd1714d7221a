package player

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records pushes and serves a canned fetch response
type fakeSink struct {
	mu      sync.Mutex
	pushed  []*domain.ProgressModel
	fetched []*domain.ProgressModel
	pushErr error
	done    chan struct{}
}

func newFakeSink(fetched ...*domain.ProgressModel) *fakeSink {
	return &fakeSink{fetched: fetched, done: make(chan struct{}, 16)}
}

func (f *fakeSink) Push(ctx context.Context, record *domain.ProgressModel) error {
	f.mu.Lock()
	f.pushed = append(f.pushed, record)
	err := f.pushErr
	f.mu.Unlock()
	f.done <- struct{}{}
	return err
}

func (f *fakeSink) Fetch(ctx context.Context) ([]*domain.ProgressModel, error) {
	return f.fetched, nil
}

func (f *fakeSink) waitPush(t *testing.T) *domain.ProgressModel {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("no push arrived")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushed[len(f.pushed)-1]
}

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }

func TestCacheHydrate(t *testing.T) {
	sink := newFakeSink(
		&domain.ProgressModel{LessonID: "l1", LessonTitle: "Intro", WatchedSeconds: 42, Completed: false},
		&domain.ProgressModel{LessonID: "l2", LessonTitle: "Basics", WatchedSeconds: 300, Completed: true},
	)
	cache := NewCache(sink, nil)

	require.NoError(t, cache.Hydrate(context.Background()))

	entry := cache.Get("l1")
	assert.Equal(t, float64(42), entry.WatchedSeconds)
	assert.False(t, entry.Completed)
	assert.True(t, cache.Get("l2").Completed)
}

func TestCacheGetZeroValueDefault(t *testing.T) {
	cache := NewCache(newFakeSink(), nil)

	entry := cache.Get("unknown")

	assert.Equal(t, "unknown", entry.LessonID)
	assert.Equal(t, float64(0), entry.WatchedSeconds)
	assert.False(t, entry.Completed)
	assert.Equal(t, "", entry.LessonTitle)
}

func TestCacheUpdateMergePolicy(t *testing.T) {
	sink := newFakeSink()
	cache := NewCache(sink, nil)

	cache.Update("l1", Update{WatchedSeconds: floatPtr(10), LessonTitle: strPtr("Intro")})
	sink.waitPush(t)

	// omitted fields retain previous values
	merged := cache.Update("l1", Update{WatchedSeconds: floatPtr(25)})
	sink.waitPush(t)
	assert.Equal(t, float64(25), merged.WatchedSeconds)
	assert.Equal(t, "Intro", merged.LessonTitle)
}

func TestCacheCompletedIsSticky(t *testing.T) {
	sink := newFakeSink()
	cache := NewCache(sink, nil)

	cache.Update("l1", Update{WatchedSeconds: floatPtr(300), Completed: boolPtr(true)})
	sink.waitPush(t)

	// a later partial omitting completed must not clear it
	merged := cache.Update("l1", Update{WatchedSeconds: floatPtr(120)})
	sink.waitPush(t)
	assert.True(t, merged.Completed)

	// neither must an explicit false
	merged = cache.Update("l1", Update{Completed: boolPtr(false)})
	sink.waitPush(t)
	assert.True(t, merged.Completed)
}

func TestCacheMonotonicWithTrackerFedValues(t *testing.T) {
	// the tracker only ever sends its max watermark, so any interleaving of
	// pause/end/sample flushes keeps the cached value non-decreasing
	sink := newFakeSink()
	cache := NewCache(sink, nil)

	last := float64(0)
	for _, s := range []float64{5, 12, 12, 40, 40, 87} {
		merged := cache.Update("l1", Update{WatchedSeconds: floatPtr(s)})
		sink.waitPush(t)
		assert.True(t, merged.WatchedSeconds >= last)
		last = merged.WatchedSeconds
	}
}

func TestCacheTransientFieldsResetOnUpdate(t *testing.T) {
	sink := newFakeSink()
	cache := NewCache(sink, nil)

	cache.Update("l1", Update{TotalDuration: floatPtr(600), UnlockedSeek: floatPtr(50), Watched: boolPtr(true)})
	sink.waitPush(t)

	// transient hints are session-local and recomputed by the caller, a
	// partial that does not carry them resets them
	merged := cache.Update("l1", Update{WatchedSeconds: floatPtr(60)})
	sink.waitPush(t)
	assert.Equal(t, float64(0), merged.TotalDuration)
	assert.Equal(t, float64(0), merged.UnlockedSeek)
	assert.False(t, merged.Watched)

	merged = cache.Update("l1", Update{TotalDuration: floatPtr(600)})
	sink.waitPush(t)
	assert.Equal(t, float64(600), merged.TotalDuration)
}

func TestCacheUpdatePushesMergedRecord(t *testing.T) {
	sink := newFakeSink()
	cache := NewCache(sink, nil)

	cache.Update("l1", Update{WatchedSeconds: floatPtr(10), LessonTitle: strPtr("Intro")})
	sink.waitPush(t)
	cache.Update("l1", Update{WatchedSeconds: floatPtr(25), Completed: boolPtr(true)})
	record := sink.waitPush(t)

	assert.Equal(t, "l1", record.LessonID)
	assert.Equal(t, "Intro", record.LessonTitle)
	assert.Equal(t, float64(25), record.WatchedSeconds)
	assert.True(t, record.Completed)
}

func TestCachePushFailureKeepsMerge(t *testing.T) {
	sink := newFakeSink()
	sink.pushErr = context.DeadlineExceeded
	cache := NewCache(sink, nil)

	cache.Update("l1", Update{WatchedSeconds: floatPtr(30)})
	sink.waitPush(t)

	// failed write is logged only, the in-memory merge stays
	assert.Equal(t, float64(30), cache.Get("l1").WatchedSeconds)
}

func TestAggregatePercentage(t *testing.T) {
	sink := newFakeSink(
		&domain.ProgressModel{LessonID: "l1", Completed: true},
		&domain.ProgressModel{LessonID: "l2", Completed: true},
		&domain.ProgressModel{LessonID: "l3", Completed: false},
	)
	cache := NewCache(sink, nil)
	require.NoError(t, cache.Hydrate(context.Background()))

	assert.Equal(t, float64(0), cache.AggregatePercentage(0))
	assert.Equal(t, float64(50), cache.AggregatePercentage(4))
	assert.InDelta(t, 66.6, cache.AggregatePercentage(3), 0.1)
}
