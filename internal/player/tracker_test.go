package player

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
)

// fakePlayer scripted media player
type fakePlayer struct {
	mu       sync.Mutex
	position float64
	duration float64
	seeks    []float64
}

func (f *fakePlayer) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakePlayer) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakePlayer) Seek(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
}

func (f *fakePlayer) setPosition(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = seconds
}

func (f *fakePlayer) allSeeks() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.seeks...)
}

func newTestTracker(persisted ...*domain.ProgressModel) (*Tracker, *fakePlayer, *fakeSink) {
	sink := newFakeSink(persisted...)
	cache := NewCache(sink, nil)
	_ = cache.Hydrate(context.Background())
	player := &fakePlayer{duration: 600}
	tracker := NewTracker(cache, player, "l1", "Intro")
	return tracker, player, sink
}

func TestTrackerReadyReportsDuration(t *testing.T) {
	tracker, _, sink := newTestTracker()

	tracker.HandleReady()

	assert.Equal(t, StateReady, tracker.State())
	record := sink.waitPush(t)
	assert.Equal(t, "l1", record.LessonID)
	assert.Equal(t, float64(600), tracker.cache.Get("l1").TotalDuration)
}

func TestTrackerReadyResumesOnce(t *testing.T) {
	tracker, player, _ := newTestTracker(
		&domain.ProgressModel{LessonID: "l1", WatchedSeconds: 87},
	)

	tracker.HandleReady()
	tracker.HandleReady()

	assert.Equal(t, []float64{87}, player.allSeeks())
	assert.Equal(t, float64(87), tracker.Watermark())
}

func TestTrackerReadyNoResumeFromZero(t *testing.T) {
	tracker, player, _ := newTestTracker()

	tracker.HandleReady()

	assert.Empty(t, player.allSeeks())
}

func TestTrackerPauseFlushesWatermark(t *testing.T) {
	tracker, player, sink := newTestTracker()
	tracker.HandleReady()
	sink.waitPush(t)

	tracker.HandlePlay()
	player.setPosition(42)
	tracker.HandlePause()

	assert.Equal(t, StatePaused, tracker.State())
	record := sink.waitPush(t)
	assert.Equal(t, float64(42), record.WatchedSeconds)
	assert.False(t, record.Completed)
}

func TestTrackerWatermarkIsMonotonic(t *testing.T) {
	tracker, player, sink := newTestTracker()
	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()

	player.setPosition(120)
	tracker.sample()
	player.setPosition(45)
	tracker.sample()

	assert.Equal(t, float64(120), tracker.Watermark())
}

func TestTrackerEndedCompletes(t *testing.T) {
	tracker, player, sink := newTestTracker()
	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()
	player.setPosition(599)

	tracker.HandleEnded()

	assert.Equal(t, StateEnded, tracker.State())
	record := sink.waitPush(t)
	assert.True(t, record.Completed)
	assert.Equal(t, float64(600), record.WatchedSeconds)
}

func TestTrackerEndedSkipsAlreadyCompleted(t *testing.T) {
	tracker, _, sink := newTestTracker(
		&domain.ProgressModel{LessonID: "l1", WatchedSeconds: 600, Completed: true},
	)
	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()

	tracker.HandleEnded()

	assert.Equal(t, StateEnded, tracker.State())
	select {
	case <-sink.done:
		t.Fatal("unexpected push for an already completed lesson")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrackerSeekClampsForward(t *testing.T) {
	tracker, player, sink := newTestTracker(
		&domain.ProgressModel{LessonID: "l1", WatchedSeconds: 100},
	)
	tracker.HandleReady()
	sink.waitPush(t)

	tracker.SeekTo(400)
	tracker.SeekTo(30)

	seeks := player.allSeeks()
	// first seek is the resume, then the clamped forward seek, then the
	// backward seek passing through
	assert.Equal(t, []float64{100, 100, 30}, seeks)
}

func TestTrackerCloseFlushes(t *testing.T) {
	tracker, player, sink := newTestTracker()
	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()
	player.setPosition(77)

	tracker.Close()

	record := sink.waitPush(t)
	assert.Equal(t, float64(77), record.WatchedSeconds)
	assert.False(t, record.Completed)
}

func TestTrackerCloseAfterEndedIsNoop(t *testing.T) {
	tracker, player, sink := newTestTracker()
	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()
	player.setPosition(600)
	tracker.HandleEnded()
	sink.waitPush(t)

	tracker.Close()

	select {
	case <-sink.done:
		t.Fatal("unexpected flush after end of media")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrackerIgnoresEventsOutOfOrder(t *testing.T) {
	tracker, _, sink := newTestTracker()

	// play before ready does nothing
	tracker.HandlePlay()
	assert.Equal(t, StateIdle, tracker.State())

	tracker.HandleReady()
	sink.waitPush(t)
	// pause without playing does nothing
	tracker.HandlePause()
	assert.Equal(t, StateReady, tracker.State())
}

func TestTrackerSamplingTicks(t *testing.T) {
	sink := newFakeSink()
	cache := NewCache(sink, nil)
	player := &fakePlayer{duration: 600}
	tracker := NewTracker(cache, player, "l1", "Intro", &TrackerOption{SampleInterval: 5 * time.Millisecond})

	tracker.HandleReady()
	sink.waitPush(t)
	tracker.HandlePlay()
	player.setPosition(33)

	assert.Eventually(t, func() bool {
		return tracker.Watermark() == 33
	}, time.Second, 5*time.Millisecond)

	tracker.Close()
}
