package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidsync/internal/model"
)

// VideoRepository 视频本地存储。写入为 last-writer-wins 的整行替换。
type VideoRepository interface {
	GetByID(ctx context.Context, id string) (*model.Video, error)
	ListAll(ctx context.Context) ([]*model.Video, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Video, error)
	ListLiked(ctx context.Context) ([]*model.Video, error)
	ListFavorites(ctx context.Context) ([]*model.Video, error)
	SearchLocal(ctx context.Context, query string) ([]*model.Video, error)
	Upsert(ctx context.Context, v *model.Video) error
	UpsertMany(ctx context.Context, vs []*model.Video) error
	UpdateLikeStatus(ctx context.Context, id string, liked bool) (int64, error)
	UpdateFavoriteStatus(ctx context.Context, id string, favorite bool) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
	DeleteAll(ctx context.Context) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository { return &videoRepository{db: db} }

// GetByID returns (nil, nil) on a cache miss; errors are storage faults only.
func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var v model.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&v).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepository) ListAll(ctx context.Context) ([]*model.Video, error) {
	var res []*model.Video
	err := r.db.WithContext(ctx).Order("update_time DESC").Find(&res).Error
	return res, err
}

func (r *videoRepository) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	var res []*model.Video
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("update_time DESC").Find(&res).Error
	return res, err
}

func (r *videoRepository) ListLiked(ctx context.Context) ([]*model.Video, error) {
	var res []*model.Video
	err := r.db.WithContext(ctx).Where("is_liked = ?", true).Order("update_time DESC").Find(&res).Error
	return res, err
}

func (r *videoRepository) ListFavorites(ctx context.Context) ([]*model.Video, error) {
	var res []*model.Video
	err := r.db.WithContext(ctx).Where("is_favorite = ?", true).Order("update_time DESC").Find(&res).Error
	return res, err
}

// SearchLocal serves the cached leg of a search query via LIKE on title
// and description.
func (r *videoRepository) SearchLocal(ctx context.Context, query string) ([]*model.Video, error) {
	var res []*model.Video
	pat := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR description LIKE ?", pat, pat).
		Order("update_time DESC").
		Find(&res).Error
	return res, err
}

func (r *videoRepository) Upsert(ctx context.Context, v *model.Video) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(v).Error
}

func (r *videoRepository) UpsertMany(ctx context.Context, vs []*model.Video) error {
	if len(vs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&vs).Error
}

// UpdateLikeStatus flips the local like flag. 0 rows affected means the key
// is absent or the flag already held that value; callers check the count.
func (r *videoRepository) UpdateLikeStatus(ctx context.Context, id string, liked bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Update("is_liked", liked)
	return tx.RowsAffected, tx.Error
}

func (r *videoRepository) UpdateFavoriteStatus(ctx context.Context, id string, favorite bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Update("is_favorite", favorite)
	return tx.RowsAffected, tx.Error
}

func (r *videoRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("update_time < ?", cutoff).Delete(&model.Video{})
	return tx.RowsAffected, tx.Error
}

func (r *videoRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Video{}).Error
}
