package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/repository"
)

func seedAged(t *testing.T, db *gorm.DB, id string, age time.Duration) {
	t.Helper()
	ts := time.Now().Add(-age).UnixMilli()
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, &model.Video{
		ID: id, Title: id, UpdateTime: ts, CreateTime: ts,
	}))
	require.NoError(t, repository.NewUserRepository(db).Upsert(ctx, &model.User{
		ID: "u-" + id, Username: id, UpdateTime: ts, CreateTime: ts,
	}))
	require.NoError(t, repository.NewWatchHistoryRepository(db).Upsert(ctx, &model.WatchHistory{
		VideoID: id, UserID: "u1", WatchTime: ts,
	}))
}

func TestPurgeOnceRemovesOnlyStaleRows(t *testing.T) {
	db := setupTestDB(t)
	seedAged(t, db, "stale", 48*time.Hour)
	seedAged(t, db, "fresh", time.Hour)

	j := NewJanitor(
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
		repository.NewWatchHistoryRepository(db),
		JanitorConfig{VideoMaxAge: 24 * time.Hour, UserMaxAge: 24 * time.Hour, HistoryMaxAge: 24 * time.Hour},
	)

	stats, err := j.PurgeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Videos)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.History)

	videos, err := repository.NewVideoRepository(db).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "fresh", videos[0].ID)
}

func TestPurgeOnceZeroAgeDisablesEviction(t *testing.T) {
	db := setupTestDB(t)
	seedAged(t, db, "ancient", 365*24*time.Hour)

	j := NewJanitor(
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
		repository.NewWatchHistoryRepository(db),
		JanitorConfig{},
	)

	stats, err := j.PurgeOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Videos+stats.Users+stats.History)
}

func TestJanitorStartStop(t *testing.T) {
	db := setupTestDB(t)
	j := NewJanitor(
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
		repository.NewWatchHistoryRepository(db),
		JanitorConfig{Interval: 10 * time.Millisecond, VideoMaxAge: time.Hour},
	)
	stop := j.Start()
	time.Sleep(30 * time.Millisecond)
	assert.NoError(t, stop(ctx))
}
