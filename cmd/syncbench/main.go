// syncbench measures the cache-through protocol against an in-process fake
// upstream: cold-cache latency, warm-cache first-value latency, and
// single-flight coalescing under concurrent identical reads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/internal/result"
	"github.com/d60-Lab/vidsync/internal/service"
	"github.com/d60-Lab/vidsync/pkg/database"
)

const (
	feedSize     = 40
	netDelay     = 60 * time.Millisecond
	concurrency  = 32
	warmUpRounds = 1
)

func main() {
	var upstreamCalls atomic.Int64
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		time.Sleep(netDelay)
		resp := remote.FeedResponse{Count: feedSize, Total: feedSize}
		for i := 0; i < feedSize; i++ {
			dto := remote.VideoDTO{
				ID:          fmt.Sprintf("v%03d", i),
				Title:       fmt.Sprintf("video %03d", i),
				PlayURL:     fmt.Sprintf("https://cdn.example.com/v%03d.mp4", i),
				Duration:    120 + i,
				Category:    "bench",
				Author:      remote.AuthorDTO{ID: "a1", Name: "bench author"},
				ReleaseTime: time.Now().UnixMilli(),
			}
			resp.ItemList = append(resp.ItemList, remote.FeedItem{Type: "video", Data: &dto})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer api.Close()

	db := must(database.Open(database.Options{Driver: "sqlite", DSN: ":memory:"}))
	mustDo(database.Migrate(db))

	src := remote.NewClient(remote.Options{BaseURL: api.URL})
	videoRepo := repository.NewVideoRepository(db)
	svc := service.NewVideoService(
		videoRepo,
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		src, nil, feedSize,
	)
	ctx := context.Background()

	// Cold cache: Loading -> Success(fresh), one upstream call.
	start := time.Now()
	_, _, err := result.Collect(ctx, svc.FeedVideos(ctx, false, ""))
	mustDo(err)
	fmt.Printf("cold cache: terminal after %v (upstream calls: %d)\n",
		time.Since(start).Round(time.Millisecond), upstreamCalls.Load())

	// Warm cache: first Success arrives before the network round trip.
	for i := 0; i < warmUpRounds; i++ {
		_, _, err = result.Collect(ctx, svc.FeedVideos(ctx, false, ""))
		mustDo(err)
	}
	start = time.Now()
	stream := svc.FeedVideos(ctx, false, "")
	var firstValue, terminal time.Duration
	for r := range stream {
		switch r.State {
		case result.StateSuccess:
			if firstValue == 0 {
				firstValue = time.Since(start)
			}
			terminal = time.Since(start)
		case result.StateError:
			mustDo(r.Err)
		}
	}
	fmt.Printf("warm cache: first value %v, terminal %v\n",
		firstValue.Round(time.Millisecond), terminal.Round(time.Millisecond))

	// Single flight: concurrent identical reads share one upstream call.
	before := upstreamCalls.Load()
	var wg sync.WaitGroup
	start = time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := result.Collect(ctx, svc.FeedVideos(ctx, true, ""))
			mustDo(err)
		}()
	}
	wg.Wait()
	fmt.Printf("single flight: %d concurrent reads, %d upstream call(s), %v total\n",
		concurrency, upstreamCalls.Load()-before, time.Since(start).Round(time.Millisecond))
}

func must[T any](v T, err error) T {
	mustDo(err)
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
