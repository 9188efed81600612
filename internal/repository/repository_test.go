package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidsync/internal/model"
)

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

func testVideo(id string, updateTime int64) *model.Video {
	return &model.Video{
		ID:         id,
		Title:      "title " + id,
		Category:   "daily",
		AuthorID:   "a1",
		CreateTime: updateTime,
		UpdateTime: updateTime,
	}
}

var ctx = context.Background()
