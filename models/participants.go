package models

import (
	"time"
)

// ParticipantStatus is the lifecycle state of a user's relationship to
// one activity.
type ParticipantStatus string

const (
	ParticipantRegistered ParticipantStatus = "REGISTERED"
	ParticipantCheckedIn  ParticipantStatus = "CHECKED_IN"
	ParticipantAbsent     ParticipantStatus = "ABSENT"
	ParticipantCompleted  ParticipantStatus = "COMPLETED"
)

// Valid returns true when the status is a supported value.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantRegistered, ParticipantCheckedIn, ParticipantAbsent, ParticipantCompleted:
		return true
	default:
		return false
	}
}

// ActivityParticipant joins a user to an activity. Exactly one row
// exists per (activity, user) pair. CheckInTime is set once on first
// check-in and never cleared by later status changes.
type ActivityParticipant struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ActivityID   uint              `gorm:"not null;uniqueIndex:idx_activity_user" json:"activity_id"`
	UserID       uint              `gorm:"not null;uniqueIndex:idx_activity_user" json:"user_id"`
	Status       ParticipantStatus `gorm:"size:20;default:'REGISTERED'" json:"status"`
	CheckInTime  *time.Time        `json:"check_in_time"`
	PointsEarned *int              `json:"points_earned"`
	AbsentReason *string           `gorm:"size:500" json:"absent_reason"`

	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Activity Activity `gorm:"foreignKey:ActivityID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
