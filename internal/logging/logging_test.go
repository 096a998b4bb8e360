package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestDBHandlerStoresErrorRecords(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	var out bytes.Buffer
	stdout := slog.NewJSONHandler(&out, nil)
	logger := slog.New(NewMultiHandler(stdout, h)).With("workspace_id", "ws-1")

	logger.Info("not persisted")
	logger.Error("record create failed",
		"action", "record.create",
		"user_id", "u-1",
		"error", "boom",
		"latency_ms", 12.6,
		"table_id", "t-1",
	)
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "record create failed", entry.Message)
	assert.Equal(t, "ws-1", entry.WorkspaceID)
	assert.Equal(t, "record.create", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "t-1", extra["table_id"])

	// Both records reached stdout.
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("\n")))
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
}

func TestDBHandlerStopWritesPendingRecords(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)

	logger := slog.New(h)
	logger.Error("first")
	logger.Error("second")
	h.Stop()
	h.Stop()

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPurgeBefore(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()
	old := models.SystemLog{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -40), Level: "ERROR"}
	recent := models.SystemLog{ID: uuid.New(), Timestamp: now, Level: "ERROR"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	deleted, err := PurgeBefore(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
