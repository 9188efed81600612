package service

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/result"
)

var ctx = context.Background()

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Video{}, &model.Category{}, &model.User{}, &model.WatchHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeSource counts calls and optionally parks fetches on a gate so tests
// can hold several subscribers inside one network leg.
type fakeSource struct {
	mu         sync.Mutex
	feedCalls  int
	catCalls   int
	byCatCalls int
	detCalls   int
	srchCalls  int
	relCalls   int

	gate chan struct{} // when non-nil, every fetch blocks until closed

	feed       []remote.VideoDTO
	categories []remote.CategoryDTO
	details    map[string]remote.VideoDTO
	err        error
}

func dto(id, title, category string) remote.VideoDTO {
	return remote.VideoDTO{
		ID:          id,
		Title:       title,
		Description: "about " + title,
		PlayURL:     "https://cdn.example.com/" + id + ".mp4",
		Cover:       remote.CoverDTO{Feed: "https://img.example.com/" + id + ".jpg"},
		Duration:    60,
		Category:    category,
		Author:      remote.AuthorDTO{ID: "author-1", Name: "uploader", Icon: "icon.png"},
		ReleaseTime: 1700000000000,
	}
}

func (f *fakeSource) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeSource) count(n *int) error {
	f.mu.Lock()
	*n++
	err := f.err
	f.mu.Unlock()
	return err
}

func (f *fakeSource) feedEnvelope() *remote.FeedResponse {
	resp := &remote.FeedResponse{Count: len(f.feed), Total: len(f.feed)}
	for i := range f.feed {
		resp.ItemList = append(resp.ItemList, remote.FeedItem{Type: "video", Data: &f.feed[i]})
	}
	return resp
}

func (f *fakeSource) FetchFeed(ctx context.Context, num int, nextURL string) (*remote.FeedResponse, error) {
	if err := f.count(&f.feedCalls); err != nil {
		return nil, err
	}
	f.wait()
	return f.feedEnvelope(), nil
}

func (f *fakeSource) FetchCategories(ctx context.Context) (*remote.CategoryListResponse, error) {
	if err := f.count(&f.catCalls); err != nil {
		return nil, err
	}
	f.wait()
	return &remote.CategoryListResponse{ItemList: f.categories, Count: len(f.categories)}, nil
}

func (f *fakeSource) FetchByCategory(ctx context.Context, categoryID string) (*remote.FeedResponse, error) {
	if err := f.count(&f.byCatCalls); err != nil {
		return nil, err
	}
	f.wait()
	return f.feedEnvelope(), nil
}

func (f *fakeSource) FetchDetail(ctx context.Context, videoID string) (*remote.VideoDTO, error) {
	if err := f.count(&f.detCalls); err != nil {
		return nil, err
	}
	f.wait()
	d, ok := f.details[videoID]
	if !ok {
		return nil, remote.ErrMalformedBody
	}
	return &d, nil
}

func (f *fakeSource) FetchSearch(ctx context.Context, query string, start, num int) (*remote.SearchResponse, error) {
	if err := f.count(&f.srchCalls); err != nil {
		return nil, err
	}
	f.wait()
	return &remote.SearchResponse{ItemList: f.feed, Count: len(f.feed)}, nil
}

func (f *fakeSource) FetchRelated(ctx context.Context, videoID string) (*remote.FeedResponse, error) {
	if err := f.count(&f.relCalls); err != nil {
		return nil, err
	}
	f.wait()
	return f.feedEnvelope(), nil
}

// drain reads a stream to completion and returns the observed states, the
// payload of each Success in order, and the terminal error if any.
func drain[T any](t *testing.T, ch <-chan result.Result[T]) (states []result.State, successes []T, err error) {
	t.Helper()
	for r := range ch {
		states = append(states, r.State)
		switch r.State {
		case result.StateSuccess:
			successes = append(successes, r.Data)
		case result.StateError:
			err = r.Err
		}
	}
	return states, successes, err
}
