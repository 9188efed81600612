package service

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/internal/result"
)

// CategoryService 分类同步。列表走 cache-then-network；选中状态只在本地维护。
type CategoryService interface {
	Categories(ctx context.Context, refresh bool) <-chan result.Result[[]*model.Category]
	SelectedCategories(ctx context.Context) ([]*model.Category, error)
	SelectCategory(ctx context.Context, categoryID string, selected bool) error
}

type categoryService struct {
	categories repository.CategoryRepository
	source     remote.Source
	flight     singleflight.Group
}

func NewCategoryService(categories repository.CategoryRepository, source remote.Source) CategoryService {
	return &categoryService{categories: categories, source: source}
}

func (s *categoryService) Categories(ctx context.Context, refresh bool) <-chan result.Result[[]*model.Category] {
	return syncStream(ctx, &s.flight, "categories", refresh,
		s.categories.ListAll,
		func(fctx context.Context) ([]*model.Category, error) {
			resp, err := s.source.FetchCategories(fctx)
			if err != nil {
				return nil, err
			}
			// Upstream list order defines sortOrder.
			fresh := make([]*model.Category, 0, len(resp.ItemList))
			for i, dto := range resp.ItemList {
				fresh = append(fresh, categoryFromDTO(dto, i))
			}
			if err := s.categories.UpsertMany(fctx, fresh); err != nil {
				return nil, persistence(err)
			}
			return fresh, nil
		},
	)
}

func (s *categoryService) SelectedCategories(ctx context.Context) ([]*model.Category, error) {
	rows, err := s.categories.ListSelected(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

func (s *categoryService) SelectCategory(ctx context.Context, categoryID string, selected bool) error {
	if strings.TrimSpace(categoryID) == "" {
		return ErrEmptyCategoryID
	}
	if _, err := s.categories.UpdateSelection(ctx, categoryID, selected); err != nil {
		return persistence(err)
	}
	return nil
}
