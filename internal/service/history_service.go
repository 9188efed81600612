package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/repository"
)

// WatchHistoryService 观看历史。进度写入以 (videoId, userId) 为键做整行
// 替换，同一对键重复上报只更新进度与时间戳。
type WatchHistoryService interface {
	UpdateWatchProgress(ctx context.Context, videoID, userID string, progress, duration int64, completed bool) error
	Progress(ctx context.Context, videoID, userID string) (*model.WatchHistory, error)
	History(ctx context.Context, userID string) ([]*model.WatchHistory, error)
	RecentHistory(ctx context.Context, userID string, limit int) ([]*model.WatchHistory, error)
	ClearUser(ctx context.Context, userID string) error
}

type watchHistoryService struct {
	history repository.WatchHistoryRepository
}

func NewWatchHistoryService(history repository.WatchHistoryRepository) WatchHistoryService {
	return &watchHistoryService{history: history}
}

func (s *watchHistoryService) UpdateWatchProgress(ctx context.Context, videoID, userID string, progress, duration int64, completed bool) error {
	if strings.TrimSpace(videoID) == "" {
		return ErrEmptyVideoID
	}
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if progress < 0 {
		progress = 0
	}
	if duration < 0 {
		duration = 0
	}
	h := &model.WatchHistory{
		VideoID:       videoID,
		UserID:        userID,
		WatchProgress: progress,
		WatchDuration: duration,
		IsCompleted:   completed,
		WatchTime:     nowMillis(),
	}
	if err := s.history.Upsert(ctx, h); err != nil {
		return persistence(err)
	}
	return nil
}

func (s *watchHistoryService) Progress(ctx context.Context, videoID, userID string) (*model.WatchHistory, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, ErrEmptyVideoID
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	h, err := s.history.GetByVideoAndUser(ctx, videoID, userID)
	if err != nil {
		return nil, persistence(err)
	}
	if h == nil {
		return nil, ErrNotFound
	}
	return h, nil
}

func (s *watchHistoryService) History(ctx context.Context, userID string) ([]*model.WatchHistory, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	rows, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

func (s *watchHistoryService) RecentHistory(ctx context.Context, userID string, limit int) ([]*model.WatchHistory, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	rows, err := s.history.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

func (s *watchHistoryService) ClearUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if _, err := s.history.DeleteByUser(ctx, userID); err != nil {
		return persistence(err)
	}
	return nil
}
