package model

// Video 视频主体（主键为上游视频 ID）
type Video struct {
	ID           string `gorm:"primaryKey;type:varchar(64)"`
	Title        string `gorm:"type:varchar(255);not null"`
	Description  string `gorm:"type:text"`
	PlayURL      string `gorm:"type:varchar(512)"`
	CoverURL     string `gorm:"type:varchar(512)"`
	Duration     int    // seconds
	Category     string `gorm:"type:varchar(64);index:idx_video_category"`
	AuthorID     string `gorm:"type:varchar(64);index:idx_video_author"`
	AuthorName   string `gorm:"type:varchar(128)"`
	AuthorIcon   string `gorm:"type:varchar(512)"`
	PlayCount    int64  `gorm:"not null;default:0"`
	LikeCount    int64  `gorm:"not null;default:0"`
	ShareCount   int64  `gorm:"not null;default:0"`
	CommentCount int64  `gorm:"not null;default:0"`
	IsLiked      bool   `gorm:"not null;default:false;index:idx_video_liked"`
	IsFavorite   bool   `gorm:"not null;default:false;index:idx_video_favorite"`
	CreateTime   int64  `gorm:"not null"`
	UpdateTime   int64  `gorm:"not null;index:idx_video_update"` // unix millis, refresh ordering key
}

func (Video) TableName() string { return "videos" }
