package models

import (
	"time"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionReviewed SuggestionStatus = "reviewed"
	SuggestionResolved SuggestionStatus = "resolved"
)

type Suggestion struct {
	ID       uint             `gorm:"primaryKey" json:"id"`
	AuthorID uint             `gorm:"not null;index" json:"author_id"`
	Title    string           `gorm:"size:255;not null" json:"title"`
	Content  string           `gorm:"type:text" json:"content"`
	Status   SuggestionStatus `gorm:"size:20;default:'pending'" json:"status"`
	Response string           `gorm:"type:text" json:"response"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
