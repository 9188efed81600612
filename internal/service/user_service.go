package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/repository"
)

// UserService 用户读写。上游没有独立的用户接口：用户行由视频同步时的
// 作者信息落库，这里只提供本地读取与关注状态切换。
type UserService interface {
	UserInfo(ctx context.Context, userID string) (*model.User, error)
	FollowedUsers(ctx context.Context) ([]*model.User, error)
	FollowUser(ctx context.Context, userID string, followed bool) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) UserInfo(ctx context.Context, userID string) (*model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *userService) FollowedUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.users.ListFollowed(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

func (s *userService) FollowUser(ctx context.Context, userID string, followed bool) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if _, err := s.users.UpdateFollowStatus(ctx, userID, followed); err != nil {
		return persistence(err)
	}
	return nil
}
