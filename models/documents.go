package models

import (
	"time"
)

// Document stores metadata only; the file itself lives in external
// storage and is referenced by URL.
type Document struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
	FileURL     string `gorm:"size:512;not null" json:"file_url"`
	UploaderID  uint   `gorm:"not null" json:"uploader_id"`
	UnitID      *uint  `gorm:"index" json:"unit_id"`

	Uploader User `gorm:"foreignKey:UploaderID" json:"uploader"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
