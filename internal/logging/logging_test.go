package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/anselmoparente/VemProFut/internal/database/dbtest"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestMultiHandlerFansOut(t *testing.T) {
	var info, warn bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("request_id", "r-1")

	logger.Info("hello")
	logger.Warn("careful")

	assert.Contains(t, info.String(), `"msg":"hello"`)
	assert.Contains(t, info.String(), `"request_id":"r-1"`)
	assert.NotContains(t, warn.String(), "hello")
	assert.Contains(t, warn.String(), `"msg":"careful"`)
}

func TestMultiHandlerKeepsGoingOnError(t *testing.T) {
	var out bytes.Buffer
	h := NewMultiHandler(
		failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&out, nil),
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0))
	assert.Error(t, err)
	assert.Contains(t, out.String(), "still written")
}

func TestDBHandlerPersistsWarnings(t *testing.T) {
	db := dbtest.New(t)
	h := NewDBHandler(db, clockwork.NewFakeClock(), slog.LevelWarn, time.Hour)
	logger := slog.New(h).With("request_id", "req-42")

	logger.Info("ignored")
	logger.Warn("slow query", "user_id", uint(7), "path", "/api/games", "rows", 120)
	logger.Error("boom", "error", errors.New("db down"), "method", "GET")
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Order("timestamp").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, "WARN", logs[0].Level)
	assert.Equal(t, "req-42", logs[0].RequestID)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, uint(7), *logs[0].UserID)
	assert.Equal(t, "/api/games", logs[0].Path)
	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(logs[0].Extra, &extra))
	assert.EqualValues(t, 120, extra["rows"])

	assert.Equal(t, "ERROR", logs[1].Level)
	assert.Equal(t, "db down", logs[1].Error)
	assert.Equal(t, "GET", logs[1].Method)

	// a second Stop must not block or panic
	h.Stop()
}

func TestPurge(t *testing.T) {
	db := dbtest.New(t)
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{Timestamp: now.AddDate(0, 0, -1), Level: "ERROR", Message: "recent"},
	}).Error)

	deleted, err := Purge(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Message)
}

func TestStartCleanupRunsDaily(t *testing.T) {
	db := dbtest.New(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&models.SystemLog{Timestamp: clock.Now().AddDate(0, 0, -31), Level: "WARN", Message: "stale"}).Error)

	done := make(chan struct{})
	defer close(done)
	StartCleanup(db, clock, 30*24*time.Hour, done)

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(24 * time.Hour)

	assert.Eventually(t, func() bool {
		var n int64
		db.Model(&models.SystemLog{}).Count(&n)
		return n == 0
	}, time.Second, 10*time.Millisecond)
}

func TestDBHandlerFlushesOnInterval(t *testing.T) {
	db := dbtest.New(t)
	clock := clockwork.NewFakeClock()
	h := NewDBHandler(db, clock, slog.LevelWarn, 5*time.Second)
	t.Cleanup(h.Stop)

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	slog.New(h).Warn("queue backing up", "depth", 12)

	count := func() int64 {
		var n int64
		db.Model(&models.SystemLog{}).Count(&n)
		return n
	}
	assert.Zero(t, count())

	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return count() == 1 }, time.Second, 10*time.Millisecond)
}
