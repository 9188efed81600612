package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidsync/internal/model"
)

// CategoryRepository 分类本地存储
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*model.Category, error)
	ListAll(ctx context.Context) ([]*model.Category, error)
	ListSelected(ctx context.Context) ([]*model.Category, error)
	Upsert(ctx context.Context, c *model.Category) error
	UpsertMany(ctx context.Context, cs []*model.Category) error
	UpdateSelection(ctx context.Context, id string, selected bool) (int64, error)
	DeleteAll(ctx context.Context) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]*model.Category, error) {
	var res []*model.Category
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&res).Error
	return res, err
}

func (r *categoryRepository) ListSelected(ctx context.Context) ([]*model.Category, error) {
	var res []*model.Category
	err := r.db.WithContext(ctx).Where("is_selected = ?", true).Order("sort_order ASC").Find(&res).Error
	return res, err
}

func (r *categoryRepository) Upsert(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(c).Error
}

func (r *categoryRepository) UpsertMany(ctx context.Context, cs []*model.Category) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&cs).Error
}

func (r *categoryRepository) UpdateSelection(ctx context.Context, id string, selected bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("is_selected", selected)
	return tx.RowsAffected, tx.Error
}

func (r *categoryRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Category{}).Error
}
