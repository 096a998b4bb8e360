package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dbBatchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	db     *gorm.DB
	attrs  []slog.Attr
	shared *dbBuffer
}

type dbBuffer struct {
	mu      sync.Mutex
	entries []models.SystemLog
	ticker  *time.Ticker
	done    chan struct{}
	exited  chan struct{}
	stopped sync.Once
}

func NewDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	h := &DBHandler{
		db: db,
		shared: &dbBuffer{
			entries: make([]models.SystemLog, 0, dbBatchSize),
			ticker:  time.NewTicker(interval),
			done:    make(chan struct{}),
			exited:  make(chan struct{}),
		},
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	defer close(h.shared.exited)
	for {
		select {
		case <-h.shared.ticker.C:
			h.Flush()
		case <-h.shared.done:
			h.Flush()
			return
		}
	}
}

// Flush writes buffered entries synchronously.
func (h *DBHandler) Flush() {
	b := h.shared
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.entries
	b.entries = make([]models.SystemLog, 0, dbBatchSize)
	b.mu.Unlock()

	if err := h.db.CreateInBatches(batch, dbBatchSize).Error; err != nil {
		// Logged below ERROR so it does not loop back into this handler.
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop ends the flush loop and returns once the final flush is written,
// so the store can be closed right after.
func (h *DBHandler) Stop() {
	h.shared.stopped.Do(func() {
		h.shared.ticker.Stop()
		close(h.shared.done)
	})
	<-h.shared.exited
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "workspace_id":
			entry.WorkspaceID = a.Value.String()
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	b := h.shared
	b.mu.Lock()
	b.entries = append(b.entries, entry)
	needFlush := len(b.entries) >= dbBatchSize
	b.mu.Unlock()

	if needFlush {
		go h.Flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{db: h.db, attrs: merged, shared: h.shared}
}

// WithGroup is a no-op: system_logs has a flat column layout.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}
