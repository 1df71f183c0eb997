package models

import (
	"time"
)

type ActivityStatus string

const (
	ActivityDraft     ActivityStatus = "draft"
	ActivityActive    ActivityStatus = "active"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

// DefaultLateThresholdMinutes applies when an activity does not carry
// its own threshold.
const DefaultLateThresholdMinutes = 15

type Activity struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Type        string         `gorm:"size:50" json:"type"`
	Status      ActivityStatus `gorm:"size:20;default:'draft'" json:"status"`
	StartTime   *time.Time     `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	Location    string         `gorm:"size:255" json:"location"`

	// GPS check-in geofence. Radius zero disables the distance check.
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	CheckInRadius float64 `json:"check_in_radius"` // meters

	// Rotating QR code presented at the venue.
	CheckInCode string `gorm:"size:64;index" json:"-"`

	OrganizerID uint  `gorm:"not null" json:"organizer_id"`
	UnitID      *uint `gorm:"index" json:"unit_id"`

	OnTimePoints         int  `gorm:"default:0" json:"on_time_points"`
	LatePoints           int  `gorm:"default:0" json:"late_points"`
	LateThresholdMinutes *int `json:"late_threshold_minutes"`

	Organizer    User                  `gorm:"foreignKey:OrganizerID" json:"organizer"`
	Unit         *Unit                 `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Participants []ActivityParticipant `gorm:"foreignKey:ActivityID" json:"participants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LateThreshold is the cutoff distinguishing on-time from late
// check-in: start time plus the activity's configured threshold,
// falling back to DefaultLateThresholdMinutes. Every check-in path
// must use this single definition.
func (a *Activity) LateThreshold() time.Time {
	minutes := DefaultLateThresholdMinutes
	if a.LateThresholdMinutes != nil && *a.LateThresholdMinutes > 0 {
		minutes = *a.LateThresholdMinutes
	}
	var start time.Time
	if a.StartTime != nil {
		start = *a.StartTime
	}
	return start.Add(time.Duration(minutes) * time.Minute)
}

// IsLate classifies a check-in time against the late threshold.
// A check-in at exactly the threshold counts as on-time.
func (a *Activity) IsLate(checkInTime time.Time) bool {
	return checkInTime.After(a.LateThreshold())
}
