package player

import (
	"context"
	"sync"

	"github.com/learnhub/learnhub/internal/domain"
	"go.uber.org/zap"
)

// Entry cached watch state for one lesson. TotalDuration, UnlockedSeek and
// Watched are session-local hints for the UI, they are never persisted and
// reset on every update unless the caller provides them again.
type Entry struct {
	LessonID       string
	LessonTitle    string
	WatchedSeconds float64
	Completed      bool

	// transient
	TotalDuration float64
	UnlockedSeek  float64
	Watched       bool
}

// Update partial cache update, nil fields retain (or reset, for transient
// fields) the previous value
type Update struct {
	LessonTitle    *string
	WatchedSeconds *float64
	Completed      *bool
	TotalDuration  *float64
	UnlockedSeek   *float64
	Watched        *bool
}

// Cache read-through write-back mirror of the learner's server-held progress.
// Gating decisions read from it synchronously, writes go out fire-and-forget.
// The server's last accepted write wins on conflict, a second tab is a known
// source of lost updates.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	sink   Sink
	logger *zap.Logger

	hydrated bool
}

// NewCache create an empty cache, call Hydrate before making gating decisions
func NewCache(sink Sink, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]*Entry),
		sink:    sink,
		logger:  logger,
	}
}

// Hydrate fetch all records for the current learner once and build the map.
// Subsequent calls re-reconcile against server truth.
func (c *Cache) Hydrate(ctx context.Context) error {
	records, err := c.sink.Fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry, len(records))
	for _, record := range records {
		c.entries[record.LessonID] = &Entry{
			LessonID:       record.LessonID,
			LessonTitle:    record.LessonTitle,
			WatchedSeconds: record.WatchedSeconds,
			Completed:      record.Completed,
		}
	}
	c.hydrated = true
	return nil
}

// Get cached entry or the zero-value default, never touches the network
func (c *Cache) Get(lessonID string) Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.entries[lessonID]; ok {
		return *entry
	}
	return Entry{LessonID: lessonID}
}

// Update merge the partial into the cached entry and push the merged record to
// the sink. Completed is sticky-or: once true it stays true regardless of
// later partials omitting it. The push is fire-and-forget, a failure is logged
// and the in-memory merge is not rolled back.
func (c *Cache) Update(lessonID string, partial Update) Entry {
	c.mu.Lock()
	prev, ok := c.entries[lessonID]
	if !ok {
		prev = &Entry{LessonID: lessonID}
	}
	merged := &Entry{
		LessonID:       lessonID,
		LessonTitle:    prev.LessonTitle,
		WatchedSeconds: prev.WatchedSeconds,
		Completed:      prev.Completed,
	}
	if partial.LessonTitle != nil {
		merged.LessonTitle = *partial.LessonTitle
	}
	if partial.WatchedSeconds != nil {
		merged.WatchedSeconds = *partial.WatchedSeconds
	}
	if partial.Completed != nil && *partial.Completed {
		merged.Completed = true
	}
	// transient fields reset unless provided
	if partial.TotalDuration != nil {
		merged.TotalDuration = *partial.TotalDuration
	}
	if partial.UnlockedSeek != nil {
		merged.UnlockedSeek = *partial.UnlockedSeek
	}
	if partial.Watched != nil {
		merged.Watched = *partial.Watched
	}
	c.entries[lessonID] = merged
	snapshot := *merged
	c.mu.Unlock()

	go c.push(snapshot)
	return snapshot
}

// AggregatePercentage completed share across the given lesson count
func (c *Cache) AggregatePercentage(totalLessonCount int) float64 {
	if totalLessonCount == 0 {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	completed := 0
	for _, entry := range c.entries {
		if entry.Completed {
			completed++
		}
	}
	return float64(completed) / float64(totalLessonCount) * 100
}

func (c *Cache) push(entry Entry) {
	// deliberately not tied to a request context, teardown must not cancel a
	// pending flush
	err := c.sink.Push(context.Background(), &domain.ProgressModel{
		LessonID:       entry.LessonID,
		LessonTitle:    entry.LessonTitle,
		WatchedSeconds: entry.WatchedSeconds,
		Completed:      entry.Completed,
	})
	if err != nil {
		c.logger.Warn("Failed to push progress",
			zap.String("lesson.id", entry.LessonID),
			zap.Error(err),
		)
	}
}
