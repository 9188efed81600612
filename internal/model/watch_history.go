package model

// WatchHistory 观看历史。
// 复合唯一键，同一用户对同一视频只保留一条当前记录
// idx_history_pair = (video_id, user_id)
type WatchHistory struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	VideoID       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_history_pair"`
	UserID        string `gorm:"type:varchar(64);not null;uniqueIndex:idx_history_pair;index:idx_history_user"`
	WatchProgress int64  `gorm:"not null;default:0"` // seconds
	WatchDuration int64  `gorm:"not null;default:0"` // seconds
	IsCompleted   bool   `gorm:"not null;default:false"`
	WatchTime     int64  `gorm:"not null;index:idx_history_watch_time"` // unix millis
}

func (WatchHistory) TableName() string { return "watch_history" }
