package models

import (
	"time"
)

// Unit is one node of the organizational hierarchy (chi đoàn, liên chi
// đoàn, ...). Units form a tree through ParentID.
type Unit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`
	ParentID    *uint  `gorm:"index" json:"parent_id"`

	Parent   *Unit  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Unit `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
