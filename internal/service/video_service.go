package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/d60-Lab/vidsync/internal/hotcache"
	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/internal/result"
	"github.com/d60-Lab/vidsync/pkg/logger"
)

// VideoService 视频同步仓库：本地缓存 + 远端 API 的读写中介。
//
// List queries return ordered streams following the cache-then-network
// protocol; VideoDetail treats the cache as authoritative once populated;
// mutations write only the local store.
type VideoService interface {
	FeedVideos(ctx context.Context, refresh bool, nextURL string) <-chan result.Result[[]*model.Video]
	VideosByCategory(ctx context.Context, categoryID string) <-chan result.Result[[]*model.Video]
	SearchVideos(ctx context.Context, query string) <-chan result.Result[[]*model.Video]
	RelatedVideos(ctx context.Context, videoID string) <-chan result.Result[[]*model.Video]
	VideoDetail(ctx context.Context, videoID string) (*model.Video, error)
	LikeVideo(ctx context.Context, videoID string, liked bool) error
	FavoriteVideo(ctx context.Context, videoID string, favorite bool) error
	LikedVideos(ctx context.Context) ([]*model.Video, error)
	FavoriteVideos(ctx context.Context) ([]*model.Video, error)
}

type videoService struct {
	videos     repository.VideoRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	source     remote.Source
	hot        *hotcache.VideoCache // optional, nil disables
	pageSize   int
	flight     singleflight.Group
}

func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	source remote.Source,
	hot *hotcache.VideoCache,
	pageSize int,
) VideoService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &videoService{
		videos:     videos,
		users:      users,
		categories: categories,
		source:     source,
		hot:        hot,
		pageSize:   pageSize,
	}
}

func (s *videoService) FeedVideos(ctx context.Context, refresh bool, nextURL string) <-chan result.Result[[]*model.Video] {
	key := "feed"
	if nextURL != "" {
		key = "feed:" + nextURL
	}
	// A continuation page never replays the cache: the subscriber already
	// holds the earlier pages.
	skipCache := refresh || nextURL != ""
	return syncStream(ctx, &s.flight, key, skipCache,
		s.videos.ListAll,
		func(fctx context.Context) ([]*model.Video, error) {
			resp, err := s.source.FetchFeed(fctx, s.pageSize, nextURL)
			if err != nil {
				return nil, err
			}
			return s.persistPage(fctx, resp.Videos())
		},
	)
}

func (s *videoService) VideosByCategory(ctx context.Context, categoryID string) <-chan result.Result[[]*model.Video] {
	if strings.TrimSpace(categoryID) == "" {
		return failedStream[[]*model.Video](ErrEmptyCategoryID)
	}
	return syncStream(ctx, &s.flight, "category:"+categoryID, false,
		func(cctx context.Context) ([]*model.Video, error) {
			return s.videos.ListByCategory(cctx, s.categoryName(cctx, categoryID))
		},
		func(fctx context.Context) ([]*model.Video, error) {
			resp, err := s.source.FetchByCategory(fctx, categoryID)
			if err != nil {
				return nil, err
			}
			return s.persistPage(fctx, resp.Videos())
		},
	)
}

func (s *videoService) SearchVideos(ctx context.Context, query string) <-chan result.Result[[]*model.Video] {
	q := strings.TrimSpace(query)
	if q == "" {
		return failedStream[[]*model.Video](ErrEmptyQuery)
	}
	if len([]rune(q)) < 2 {
		return failedStream[[]*model.Video](ErrQueryTooShort)
	}
	key := "search:" + q + ":0:" + strconv.Itoa(s.pageSize)
	return syncStream(ctx, &s.flight, key, false,
		func(cctx context.Context) ([]*model.Video, error) {
			return s.videos.SearchLocal(cctx, q)
		},
		func(fctx context.Context) ([]*model.Video, error) {
			resp, err := s.source.FetchSearch(fctx, q, 0, s.pageSize)
			if err != nil {
				return nil, err
			}
			return s.persistPage(fctx, resp.ItemList)
		},
	)
}

func (s *videoService) RelatedVideos(ctx context.Context, videoID string) <-chan result.Result[[]*model.Video] {
	if strings.TrimSpace(videoID) == "" {
		return failedStream[[]*model.Video](ErrEmptyVideoID)
	}
	// No local predicate identifies "related to X", so the cached leg is
	// skipped and the stream goes straight to the network.
	return syncStream(ctx, &s.flight, "related:"+videoID, true,
		nil,
		func(fctx context.Context) ([]*model.Video, error) {
			resp, err := s.source.FetchRelated(fctx, videoID)
			if err != nil {
				return nil, err
			}
			return s.persistPage(fctx, resp.Videos())
		},
	)
}

// VideoDetail returns the cached row when present, fetching from the
// network only on a miss. Detail records are treated as stable once
// persisted; list refreshes overwrite them later.
func (s *videoService) VideoDetail(ctx context.Context, videoID string) (*model.Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, ErrEmptyVideoID
	}
	if v, ok := s.hotGet(ctx, videoID); ok {
		return v, nil
	}
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, persistence(err)
	}
	if v != nil {
		s.hotSet(ctx, v)
		return v, nil
	}

	res := s.flight.DoChan("detail:"+videoID, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		dto, err := s.source.FetchDetail(fctx, videoID)
		if err != nil {
			return nil, err
		}
		now := nowMillis()
		fresh := videoFromDTO(*dto, now)
		if err := s.videos.Upsert(fctx, fresh); err != nil {
			return nil, persistence(err)
		}
		if dto.Author.ID != "" {
			if err := s.users.Upsert(fctx, userFromAuthor(dto.Author, now)); err != nil {
				return nil, persistence(err)
			}
		}
		s.hotSet(fctx, fresh)
		return fresh, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-res:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*model.Video), nil
	}
}

func (s *videoService) LikeVideo(ctx context.Context, videoID string, liked bool) error {
	if strings.TrimSpace(videoID) == "" {
		return ErrEmptyVideoID
	}
	rows, err := s.videos.UpdateLikeStatus(ctx, videoID, liked)
	if err != nil {
		return persistence(err)
	}
	if rows > 0 {
		s.hotDrop(ctx, videoID)
	}
	return nil
}

func (s *videoService) FavoriteVideo(ctx context.Context, videoID string, favorite bool) error {
	if strings.TrimSpace(videoID) == "" {
		return ErrEmptyVideoID
	}
	rows, err := s.videos.UpdateFavoriteStatus(ctx, videoID, favorite)
	if err != nil {
		return persistence(err)
	}
	if rows > 0 {
		s.hotDrop(ctx, videoID)
	}
	return nil
}

func (s *videoService) LikedVideos(ctx context.Context) ([]*model.Video, error) {
	rows, err := s.videos.ListLiked(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

func (s *videoService) FavoriteVideos(ctx context.Context) ([]*model.Video, error) {
	rows, err := s.videos.ListFavorites(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

// persistPage maps and upserts one fetched page plus its authors, then
// returns the mapped rows as the fresh payload.
func (s *videoService) persistPage(ctx context.Context, dtos []remote.VideoDTO) ([]*model.Video, error) {
	now := nowMillis()
	fresh := videosFromDTOs(dtos, now)
	if err := s.videos.UpsertMany(ctx, fresh); err != nil {
		return nil, persistence(err)
	}
	if err := s.users.UpsertMany(ctx, authorsFromDTOs(dtos, now)); err != nil {
		return nil, persistence(err)
	}
	return fresh, nil
}

// categoryName resolves the local filter value for a category id. Stored
// videos carry the category name, while the upstream query key is the id;
// when the category table has no row yet the id is used as-is.
func (s *videoService) categoryName(ctx context.Context, categoryID string) string {
	c, err := s.categories.GetByID(ctx, categoryID)
	if err != nil || c == nil {
		return categoryID
	}
	return c.Name
}

func (s *videoService) hotGet(ctx context.Context, id string) (*model.Video, bool) {
	if s.hot == nil {
		return nil, false
	}
	return s.hot.Get(ctx, id)
}

func (s *videoService) hotSet(ctx context.Context, v *model.Video) {
	if s.hot == nil {
		return
	}
	s.hot.Set(ctx, v)
}

func (s *videoService) hotDrop(ctx context.Context, id string) {
	if s.hot == nil {
		return
	}
	if err := s.hot.Invalidate(ctx, id); err != nil {
		logger.Warn("hot cache invalidate failed", zap.String("video", id), zap.Error(err))
	}
}
