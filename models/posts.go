package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	UnitID   *uint  `gorm:"index" json:"unit_id"`
	Pinned   bool   `gorm:"default:false" json:"pinned"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
