package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"size:100;not null" json:"full_name"`
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	Status       UserStatus `gorm:"type:varchar(10);not null;default:ACTIVE" json:"status"`
	Otp          *string    `gorm:"size:6" json:"-"`
	OtpExpiry    *time.Time `json:"-"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ParseRole returns nil for anything that is not a known role.
func ParseRole(s string) *Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		r := RoleAdmin
		return &r
	case RoleUser:
		r := RoleUser
		return &r
	}
	return nil
}

// Scope is the visibility of a query: everything (admin) or one owner's
// rows. Computed once from the caller's role instead of branching on role
// at every call site.
type Scope struct {
	All    bool
	UserID uint
}

func ScopeFor(u *User) Scope {
	if u.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{UserID: u.ID}
}
