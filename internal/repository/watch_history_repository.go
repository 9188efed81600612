package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidsync/internal/model"
)

// WatchHistoryRepository 观看历史存储。(video_id, user_id) 为实际写入键，
// 自增主键仅作为行标识。
type WatchHistoryRepository interface {
	GetByVideoAndUser(ctx context.Context, videoID, userID string) (*model.WatchHistory, error)
	ListByUser(ctx context.Context, userID string) ([]*model.WatchHistory, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*model.WatchHistory, error)
	Upsert(ctx context.Context, h *model.WatchHistory) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
	DeleteAll(ctx context.Context) error
}

type watchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

func (r *watchHistoryRepository) GetByVideoAndUser(ctx context.Context, videoID, userID string) (*model.WatchHistory, error) {
	var h model.WatchHistory
	err := r.db.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Take(&h).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *watchHistoryRepository) ListByUser(ctx context.Context, userID string) ([]*model.WatchHistory, error) {
	var res []*model.WatchHistory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("watch_time DESC").Find(&res).Error
	return res, err
}

func (r *watchHistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*model.WatchHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var res []*model.WatchHistory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("watch_time DESC").Limit(limit).Find(&res).Error
	return res, err
}

// Upsert replaces the current row for (video_id, user_id), keeping the
// surrogate id stable.
func (r *watchHistoryRepository) Upsert(ctx context.Context, h *model.WatchHistory) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "video_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watch_progress", "watch_duration", "is_completed", "watch_time",
		}),
	}).Create(h).Error
}

func (r *watchHistoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WatchHistory{})
	return tx.RowsAffected, tx.Error
}

func (r *watchHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("watch_time < ?", cutoff).Delete(&model.WatchHistory{})
	return tx.RowsAffected, tx.Error
}

func (r *watchHistoryRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.WatchHistory{}).Error
}
