package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidsync/internal/model"
)

// UserRepository 用户本地存储。用户行随视频作者同步落库，关注状态只在本地维护。
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListFollowed(ctx context.Context) ([]*model.User, error)
	Upsert(ctx context.Context, u *model.User) error
	UpsertMany(ctx context.Context, us []*model.User) error
	UpdateFollowStatus(ctx context.Context, id string, followed bool) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
	DeleteAll(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListFollowed(ctx context.Context) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).Where("is_followed = ?", true).Order("update_time DESC").Find(&res).Error
	return res, err
}

func (r *userRepository) Upsert(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(u).Error
}

func (r *userRepository) UpsertMany(ctx context.Context, us []*model.User) error {
	if len(us) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&us).Error
}

func (r *userRepository) UpdateFollowStatus(ctx context.Context, id string, followed bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_followed", followed)
	return tx.RowsAffected, tx.Error
}

func (r *userRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("update_time < ?", cutoff).Delete(&model.User{})
	return tx.RowsAffected, tx.Error
}

func (r *userRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.User{}).Error
}
