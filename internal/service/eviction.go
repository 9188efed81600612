package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/pkg/logger"
)

// JanitorConfig sets per-entity retention. A non-positive age disables
// eviction for that entity; categories are never evicted (small, bounded
// set refreshed in place).
type JanitorConfig struct {
	Interval      time.Duration
	VideoMaxAge   time.Duration
	UserMaxAge    time.Duration
	HistoryMaxAge time.Duration
}

// PurgeStats counts rows removed by one purge pass.
type PurgeStats struct {
	Videos  int64
	Users   int64
	History int64
}

// Janitor 定期清理过期缓存行。视频/用户按 update_time，历史按 watch_time。
// 清理与并发读之间不加事务栅栏：正在进行的读照常返回删除前的快照。
type Janitor struct {
	videos  repository.VideoRepository
	users   repository.UserRepository
	history repository.WatchHistoryRepository
	cfg     JanitorConfig
}

func NewJanitor(
	videos repository.VideoRepository,
	users repository.UserRepository,
	history repository.WatchHistoryRepository,
	cfg JanitorConfig,
) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Janitor{videos: videos, users: users, history: history, cfg: cfg}
}

// Start 启动后台清理循环；返回停止函数。
func (j *Janitor) Start() func(context.Context) error {
	stop := make(chan struct{})
	go j.loop(stop)
	return func(ctx context.Context) error { close(stop); return nil }
}

func (j *Janitor) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(j.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := j.PurgeOnce(context.Background()); err != nil {
				logger.Warn("eviction pass failed", zap.Error(err))
			}
		}
	}
}

// PurgeOnce removes rows older than each configured retention, relative to
// now. Partial failure stops the pass and reports what was already removed.
func (j *Janitor) PurgeOnce(ctx context.Context) (PurgeStats, error) {
	var stats PurgeStats
	now := time.Now()

	if j.cfg.VideoMaxAge > 0 {
		n, err := j.videos.DeleteOlderThan(ctx, now.Add(-j.cfg.VideoMaxAge).UnixMilli())
		if err != nil {
			return stats, persistence(err)
		}
		stats.Videos = n
	}
	if j.cfg.UserMaxAge > 0 {
		n, err := j.users.DeleteOlderThan(ctx, now.Add(-j.cfg.UserMaxAge).UnixMilli())
		if err != nil {
			return stats, persistence(err)
		}
		stats.Users = n
	}
	if j.cfg.HistoryMaxAge > 0 {
		n, err := j.history.DeleteOlderThan(ctx, now.Add(-j.cfg.HistoryMaxAge).UnixMilli())
		if err != nil {
			return stats, persistence(err)
		}
		stats.History = n
	}

	if stats.Videos+stats.Users+stats.History > 0 {
		logger.Info("evicted stale rows",
			zap.Int64("videos", stats.Videos),
			zap.Int64("users", stats.Users),
			zap.Int64("history", stats.History))
	}
	return stats, nil
}
