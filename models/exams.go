package models

import (
	"time"
)

type Exam struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	OpensAt      *time.Time `json:"opens_at"`
	ClosesAt     *time.Time `json:"closes_at"`
	PassScore    int        `gorm:"default:50" json:"pass_score"`
	RewardPoints int        `gorm:"default:0" json:"reward_points"`
	CreatorID    uint       `gorm:"not null" json:"creator_id"`

	Creator User `gorm:"foreignKey:CreatorID" json:"creator"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExamResult records one user's single attempt at an exam.
type ExamResult struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ExamID uint `gorm:"not null;uniqueIndex:idx_exam_user" json:"exam_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_exam_user" json:"user_id"`
	Score  int  `gorm:"not null" json:"score"`
	Passed bool `gorm:"default:false" json:"passed"`

	User User `gorm:"foreignKey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
}
