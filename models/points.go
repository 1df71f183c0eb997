package models

import (
	"time"
)

type PointsType string

const (
	PointsEarn   PointsType = "EARN"
	PointsDeduct PointsType = "DEDUCT"
)

// PointsHistory is the append-only ledger of point-awarding events.
// Rows are never updated or deleted; User.Points is maintained
// alongside it inside the same transaction.
type PointsHistory struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	ActivityID *uint      `gorm:"index" json:"activity_id"`
	Points     int        `gorm:"not null" json:"points"`
	Reason     string     `gorm:"size:500" json:"reason"`
	Type       PointsType `gorm:"size:20;not null" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}
