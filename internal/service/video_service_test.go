package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/internal/result"
)

func newVideoService(db *gorm.DB, src remote.Source) VideoService {
	return NewVideoService(
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		src, nil, 10,
	)
}

func TestFeedColdCache(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v1", "one", "daily"), dto("v2", "two", "daily")}}
	svc := newVideoService(db, src)

	states, successes, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)
	// Empty cache stays silent: Loading then fresh only.
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess}, states)
	require.Len(t, successes, 1)
	assert.Len(t, successes[0], 2)
	assert.Equal(t, 1, src.feedCalls)

	// The fresh page was persisted, authors included.
	v, err := repository.NewVideoRepository(db).GetByID(ctx, "v1")
	require.NoError(t, err)
	require.NotNil(t, v)
	u, err := repository.NewUserRepository(db).GetByID(ctx, "author-1")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestFeedWarmCacheThenNetwork(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v1", "one", "daily")}}
	svc := newVideoService(db, src)

	_, _, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)

	src.feed = append(src.feed, dto("v2", "two", "daily"))
	states, successes, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess, result.StateSuccess}, states)
	require.Len(t, successes, 2)
	assert.Len(t, successes[0], 1, "cached page first")
	assert.Len(t, successes[1], 2, "then the fresh page")
	assert.Equal(t, 2, src.feedCalls)
}

func TestFeedRefreshSkipsCachedEmit(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v1", "one", "daily")}}
	svc := newVideoService(db, src)

	_, _, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)

	states, successes, err := drain(t, svc.FeedVideos(ctx, true, ""))
	require.NoError(t, err)
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess}, states)
	assert.Len(t, successes, 1)
}

func TestFeedContinuationPageSkipsCachedEmit(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v1", "one", "daily")}}
	svc := newVideoService(db, src)

	_, _, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)

	states, _, err := drain(t, svc.FeedVideos(ctx, false, "http://api.example.com/feed?page=2"))
	require.NoError(t, err)
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess}, states)
}

func TestFeedErrorAfterCachedEmit(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v1", "one", "daily")}}
	svc := newVideoService(db, src)

	_, _, err := drain(t, svc.FeedVideos(ctx, false, ""))
	require.NoError(t, err)

	src.err = remote.ErrUnreachable
	states, successes, err := drain(t, svc.FeedVideos(ctx, false, ""))
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess, result.StateError}, states)
	require.Len(t, successes, 1, "cached value still delivered before the failure")
	assert.ErrorIs(t, err, remote.ErrUnreachable)
}

func TestFeedColdCacheError(t *testing.T) {
	src := &fakeSource{err: remote.ErrTimeout}
	svc := newVideoService(setupTestDB(t), src)

	states, _, err := drain(t, svc.FeedVideos(ctx, false, ""))
	assert.Equal(t, []result.State{result.StateLoading, result.StateError}, states)
	assert.ErrorIs(t, err, remote.ErrTimeout)
}

func TestFeedConcurrentReadsShareOneFetch(t *testing.T) {
	const readers = 8
	src := &fakeSource{
		feed: []remote.VideoDTO{dto("v1", "one", "daily")},
		gate: make(chan struct{}),
	}
	svc := newVideoService(setupTestDB(t), src)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, successes, err := drain(t, svc.FeedVideos(ctx, true, ""))
			assert.NoError(t, err)
			assert.Len(t, successes, 1)
		}()
	}
	// Let every subscriber park on the in-flight fetch before releasing it.
	time.Sleep(200 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, 1, src.feedCalls, "identical concurrent reads coalesce into one upstream call")
}

func TestVideoDetailCacheHitSkipsNetwork(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{details: map[string]remote.VideoDTO{}}
	svc := newVideoService(db, src)

	cached := videoFromDTO(dto("v1", "one", "daily"), 100)
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, cached))

	got, err := svc.VideoDetail(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)
	assert.Zero(t, src.detCalls, "cache hit must not reach the network")
}

func TestVideoDetailMissFetchesOnce(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{details: map[string]remote.VideoDTO{"v1": dto("v1", "one", "daily")}}
	svc := newVideoService(db, src)

	got, err := svc.VideoDetail(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got.ID)
	assert.Equal(t, 1, src.detCalls)

	// Second lookup is served from the now-populated cache.
	_, err = svc.VideoDetail(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, src.detCalls)

	// The fetched author landed in the user table.
	u, err := repository.NewUserRepository(db).GetByID(ctx, "author-1")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestVideoDetailValidatesBeforeIO(t *testing.T) {
	src := &fakeSource{}
	svc := newVideoService(setupTestDB(t), src)

	_, err := svc.VideoDetail(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyVideoID)
	assert.True(t, IsValidation(err))
	assert.Zero(t, src.detCalls)
}

func TestSearchValidatesBeforeIO(t *testing.T) {
	src := &fakeSource{}
	svc := newVideoService(setupTestDB(t), src)

	_, _, err := drain(t, svc.SearchVideos(ctx, "   "))
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, _, err = drain(t, svc.SearchVideos(ctx, "a"))
	assert.ErrorIs(t, err, ErrQueryTooShort)

	assert.Zero(t, src.srchCalls)
}

func TestSearchPersistsResults(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v9", "mountain ride", "sport")}}
	svc := newVideoService(db, src)

	_, successes, err := drain(t, svc.SearchVideos(ctx, "mountain"))
	require.NoError(t, err)
	require.NotEmpty(t, successes)

	rows, err := repository.NewVideoRepository(db).SearchLocal(ctx, "mountain")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "remote search results feed the local cache")
}

func TestSearchWarmCacheServesLocalMatchesFirst(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v2", "mountain trail", "sport")}}
	svc := newVideoService(db, src)

	seeded := videoFromDTO(dto("v1", "mountain ride", "sport"), 100)
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, seeded))

	states, successes, err := drain(t, svc.SearchVideos(ctx, "mountain"))
	require.NoError(t, err)
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess, result.StateSuccess}, states)
	require.Len(t, successes, 2)
	assert.Equal(t, "v1", successes[0][0].ID)
}

func TestRelatedGoesStraightToNetwork(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{feed: []remote.VideoDTO{dto("v2", "two", "daily")}}
	svc := newVideoService(db, src)

	// A warm store must not leak into a related-videos stream.
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, videoFromDTO(dto("v1", "one", "daily"), 100)))

	states, successes, err := drain(t, svc.RelatedVideos(ctx, "v1"))
	require.NoError(t, err)
	assert.Equal(t, []result.State{result.StateLoading, result.StateSuccess}, states)
	require.Len(t, successes, 1)
	assert.Equal(t, "v2", successes[0][0].ID)
	assert.Equal(t, 1, src.relCalls)
}

func TestVideosByCategoryResolvesNameForLocalFilter(t *testing.T) {
	db := setupTestDB(t)
	src := &fakeSource{}
	svc := newVideoService(db, src)

	// Categories are keyed by id upstream but videos store the name.
	require.NoError(t, repository.NewCategoryRepository(db).Upsert(ctx, &model.Category{ID: "5", Name: "daily"}))
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, videoFromDTO(dto("v1", "one", "daily"), 100)))

	states, successes, err := drain(t, svc.VideosByCategory(ctx, "5"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(states), 2)
	require.NotEmpty(t, successes)
	assert.Equal(t, "v1", successes[0][0].ID)
	assert.Equal(t, 1, src.byCatCalls)
}

func TestLikeVideoFlagsRowAndListsIt(t *testing.T) {
	db := setupTestDB(t)
	svc := newVideoService(db, &fakeSource{})

	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, videoFromDTO(dto("v1", "one", "daily"), 100)))

	require.NoError(t, svc.LikeVideo(ctx, "v1", true))
	// Repeating the same transition is harmless.
	require.NoError(t, svc.LikeVideo(ctx, "v1", true))

	liked, err := svc.LikedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "v1", liked[0].ID)

	require.NoError(t, svc.LikeVideo(ctx, "v1", false))
	liked, err = svc.LikedVideos(ctx)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestLikeAbsentVideoIsNoOp(t *testing.T) {
	svc := newVideoService(setupTestDB(t), &fakeSource{})
	assert.NoError(t, svc.LikeVideo(ctx, "ghost", true))
}

func TestFavoriteVideo(t *testing.T) {
	db := setupTestDB(t)
	svc := newVideoService(db, &fakeSource{})
	require.NoError(t, repository.NewVideoRepository(db).Upsert(ctx, videoFromDTO(dto("v1", "one", "daily"), 100)))

	require.NoError(t, svc.FavoriteVideo(ctx, "v1", true))
	favs, err := svc.FavoriteVideos(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.True(t, favs[0].IsFavorite)
}

func TestStreamValidationErrorsAreNotRemote(t *testing.T) {
	svc := newVideoService(setupTestDB(t), &fakeSource{})

	_, _, err := drain(t, svc.VideosByCategory(ctx, ""))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.False(t, errors.Is(err, remote.ErrUnreachable))
}
