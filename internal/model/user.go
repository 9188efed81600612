package model

// User 视频作者/观看者（来自视频 author 字段或本地创建）
type User struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	Username       string `gorm:"type:varchar(128);index:idx_user_username"`
	Nickname       string `gorm:"type:varchar(128)"`
	Avatar         string `gorm:"type:varchar(512)"`
	Bio            string `gorm:"type:text"`
	FollowingCount int    `gorm:"not null;default:0"`
	FollowerCount  int    `gorm:"not null;default:0"`
	VideoCount     int    `gorm:"not null;default:0"`
	LikeCount      int    `gorm:"not null;default:0"`
	IsFollowed     bool   `gorm:"not null;default:false;index:idx_user_followed"`
	CreateTime     int64  `gorm:"not null"`
	UpdateTime     int64  `gorm:"not null;index:idx_user_update"`
}

func (User) TableName() string { return "users" }
