package player

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// State playback tracker lifecycle
type State int

const (
	StateIdle State = iota
	StateReady
	StatePlaying
	StatePaused
	StateEnded
)

// MediaPlayer external playback collaborator observed by the tracker
type MediaPlayer interface {
	CurrentTime() float64
	Duration() float64
	Seek(seconds float64)
}

// TrackerOption ...
type TrackerOption struct {
	SampleInterval time.Duration
}

// Tracker derives progress events for one active lesson from a MediaPlayer.
// It keeps the monotonic furthest-watched watermark and flushes it to the
// cache on pause, end and teardown. Completion is one-directional, once a
// lesson completes no later transition flips it back.
type Tracker struct {
	mu sync.Mutex

	player      MediaPlayer
	cache       *Cache
	lessonID    string
	lessonTitle string
	interval    time.Duration
	logger      *zap.Logger

	state     State
	watermark float64
	duration  float64
	resumed   bool
	stop      chan struct{}
}

// NewTracker create a tracker in Idle state. Sampling defaults to once per
// second.
func NewTracker(cache *Cache, player MediaPlayer, lessonID, lessonTitle string, options ...*TrackerOption) *Tracker {
	interval := time.Second
	if len(options) > 0 {
		if option := options[0]; option.SampleInterval > 0 {
			interval = option.SampleInterval
		}
	}
	return &Tracker{
		player:      player,
		cache:       cache,
		lessonID:    lessonID,
		lessonTitle: lessonTitle,
		interval:    interval,
		logger:      cache.logger,
		state:       StateIdle,
	}
}

// State current tracker state
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Watermark furthest playback position reached so far
func (t *Tracker) Watermark() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.watermark
}

// HandleReady player initialization completed. Records the media duration,
// reports it upward and seeks to the persisted position exactly once per
// lesson load so later manual seeks are left alone.
func (t *Tracker) HandleReady() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return
	}
	t.state = StateReady
	t.duration = t.player.Duration()

	persisted := t.cache.Get(t.lessonID)
	t.watermark = persisted.WatchedSeconds
	t.cache.Update(t.lessonID, Update{
		TotalDuration: &t.duration,
		UnlockedSeek:  &t.watermark,
	})
	if persisted.WatchedSeconds > 0 && !t.resumed {
		t.player.Seek(persisted.WatchedSeconds)
	}
	t.resumed = true
}

// HandlePlay playback started, begin periodic sampling
func (t *Tracker) HandlePlay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateReady && t.state != StatePaused {
		return
	}
	t.state = StatePlaying
	stop := make(chan struct{})
	t.stop = stop
	go t.sampleLoop(stop)
}

// HandlePause flush the current watermark, completion untouched
func (t *Tracker) HandlePause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePlaying {
		return
	}
	t.stopSampling()
	t.sampleLocked()
	t.state = StatePaused
	t.flushLocked(false)
}

// HandleEnded end of media. Marks the lesson completed unless it already is,
// with the watermark forced to the full duration.
func (t *Tracker) HandleEnded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePlaying && t.state != StatePaused {
		return
	}
	t.stopSampling()
	t.state = StateEnded

	if t.cache.Get(t.lessonID).Completed {
		return
	}
	t.watermark = t.duration
	t.flushLocked(true)
}

// SeekTo scrubber seek request. Forward seeks clamp to the furthest-watched
// watermark, backward seeks pass through.
func (t *Tracker) SeekTo(target float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if target > t.watermark {
		target = t.watermark
	}
	t.player.Seek(target)
}

// Close teardown at any state, best-effort flush so navigating away mid
// playback does not lose the session's progress. Pending pushes are not
// cancelled.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopSampling()
	if t.state == StateEnded {
		return
	}
	t.sampleLocked()
	if t.watermark > 0 {
		t.flushLocked(false)
	}
}

func (t *Tracker) sampleLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.sample()
		case <-stop:
			return
		}
	}
}

func (t *Tracker) sample() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePlaying {
		return
	}
	t.sampleLocked()
}

// sampleLocked apply the monotonic furthest-watched rule, caller holds mu
func (t *Tracker) sampleLocked() {
	if current := t.player.CurrentTime(); current > t.watermark {
		t.watermark = current
	}
}

// flushLocked push the watermark to the cache, caller holds mu
func (t *Tracker) flushLocked(completed bool) {
	update := Update{
		LessonTitle:    &t.lessonTitle,
		WatchedSeconds: &t.watermark,
		UnlockedSeek:   &t.watermark,
	}
	if completed {
		update.Completed = &completed
	}
	t.cache.Update(t.lessonID, update)
}

func (t *Tracker) stopSampling() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
