package model

// Category 视频分类
type Category struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	Name        string `gorm:"type:varchar(128);not null"`
	Description string `gorm:"type:text"`
	CoverURL    string `gorm:"type:varchar(512)"`
	VideoCount  int    `gorm:"not null;default:0"`
	IsSelected  bool   `gorm:"not null;default:false"`
	SortOrder   int    `gorm:"not null;default:0;index:idx_category_sort"`
}

func (Category) TableName() string { return "categories" }
