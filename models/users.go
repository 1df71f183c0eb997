package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleLeader UserRole = "leader"
	RoleMember UserRole = "member"
)

// Elevated reports whether the role may perform administrative
// attendance operations. Only the base member role is excluded.
func (r UserRole) Elevated() bool {
	return r == RoleAdmin || r == RoleLeader
}

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FullName        string    `gorm:"size:255;not null" json:"full_name"`
	Email           string    `gorm:"size:255;unique;not null" json:"email"`
	Password        string    `gorm:"size:255" json:"-"` // Exclude password from JSON
	Phone           string    `gorm:"size:20" json:"phone"`
	Role            UserRole  `gorm:"size:20;default:'member'" json:"role"`
	UnitID          *uint     `gorm:"index" json:"unit_id"`
	Points          int       `gorm:"default:0" json:"points"`
	JoinedAt        time.Time `json:"joined_at"`
	RefreshToken    string    `gorm:"size:512" json:"-"`
	RefreshTokenExp time.Time `json:"-"`

	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserBrief is the minimal projection embedded in attendance responses.
type UserBrief struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, FullName: u.FullName, Phone: u.Phone, Email: u.Email}
}

func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
