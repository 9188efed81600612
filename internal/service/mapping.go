package service

import (
	"time"

	"github.com/d60-Lab/vidsync/internal/model"
	"github.com/d60-Lab/vidsync/internal/remote"
)

// DTO -> entity mapping. UpdateTime is stamped at persist time and drives
// both recency ordering and age eviction.

func videoFromDTO(dto remote.VideoDTO, now int64) *model.Video {
	return &model.Video{
		ID:           dto.ID,
		Title:        dto.Title,
		Description:  dto.Description,
		PlayURL:      dto.PlayURL,
		CoverURL:     dto.Cover.Feed,
		Duration:     dto.Duration,
		Category:     dto.Category,
		AuthorID:     dto.Author.ID,
		AuthorName:   dto.Author.Name,
		AuthorIcon:   dto.Author.Icon,
		PlayCount:    0, // the upstream feed carries no play count
		LikeCount:    dto.Consumption.CollectionCount,
		ShareCount:   dto.Consumption.ShareCount,
		CommentCount: dto.Consumption.ReplyCount,
		CreateTime:   dto.ReleaseTime,
		UpdateTime:   now,
	}
}

func videosFromDTOs(dtos []remote.VideoDTO, now int64) []*model.Video {
	out := make([]*model.Video, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, videoFromDTO(d, now))
	}
	return out
}

func userFromAuthor(a remote.AuthorDTO, now int64) *model.User {
	return &model.User{
		ID:         a.ID,
		Username:   a.Name,
		Nickname:   a.Name,
		Avatar:     a.Icon,
		Bio:        a.Description,
		CreateTime: now,
		UpdateTime: now,
	}
}

// authorsFromDTOs deduplicates authors of a fetched page; blank author ids
// (anonymous uploads) are skipped.
func authorsFromDTOs(dtos []remote.VideoDTO, now int64) []*model.User {
	seen := make(map[string]struct{}, len(dtos))
	out := make([]*model.User, 0, len(dtos))
	for _, d := range dtos {
		if d.Author.ID == "" {
			continue
		}
		if _, ok := seen[d.Author.ID]; ok {
			continue
		}
		seen[d.Author.ID] = struct{}{}
		out = append(out, userFromAuthor(d.Author, now))
	}
	return out
}

func categoryFromDTO(dto remote.CategoryDTO, sortOrder int) *model.Category {
	return &model.Category{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		CoverURL:    dto.BgPicture,
		VideoCount:  dto.VideoCount,
		SortOrder:   sortOrder,
	}
}

func nowMillis() int64 { return time.Now().UnixMilli() }
