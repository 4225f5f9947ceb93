package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that buffers WARN+ records and writes them to
// the system_logs table in batches, on a timer or when the buffer fills.
type DBHandler struct {
	sink  *logSink
	attrs []slog.Attr
}

// logSink is shared by every handler derived through WithAttrs.
type logSink struct {
	db       *gorm.DB
	clock    clockwork.Clock
	level    slog.Level
	mu       sync.Mutex
	buffer   []models.SystemLog
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewDBHandler starts the writer, which flushes every interval on clock.
func NewDBHandler(db *gorm.DB, clock clockwork.Clock, level slog.Level, interval time.Duration) *DBHandler {
	s := &logSink{
		db:      db,
		clock:   clock,
		level:   level,
		buffer:  make([]models.SystemLog, 0, batchSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.loop(interval)
	return &DBHandler{sink: s}
}

func (s *logSink) loop(interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	defer close(s.stopped)
	for {
		select {
		case <-ticker.Chan():
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *logSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	// not through slog.Default, which may route back here
	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the writer to exit.
func (h *DBHandler) Stop() {
	h.sink.stopOnce.Do(func() { close(h.sink.done) })
	<-h.sink.stopped
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.level
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			if v := a.Value.Any(); v != nil {
				if id, ok := toUint(v); ok && id != 0 {
					entry.UserID = &id
				}
			}
		case "method":
			entry.Method = a.Value.String()
		case "path":
			entry.Path = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	s := h.sink
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	full := len(s.buffer) >= batchSize
	s.mu.Unlock()

	if full {
		go s.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: stored records are flat.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}

func toUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, true
	case uint64:
		return uint(n), true
	case int64:
		if n >= 0 {
			return uint(n), true
		}
	case int:
		if n >= 0 {
			return uint(n), true
		}
	}
	return 0, false
}
