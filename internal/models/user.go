package models

import "time"

const (
	RoleUser     = "user"
	RolePharmacy = "pharmacy"
	RoleAdmin    = "admin"

	// RolePharmacyAdmin is an older spelling of RolePharmacy still sent by
	// some clients.
	RolePharmacyAdmin = "pharmacyAdmin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeRole folds role aliases into their canonical value.
func NormalizeRole(role string) string {
	if role == RolePharmacyAdmin {
		return RolePharmacy
	}
	return role
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the owner projection embedded in pharmacy responses.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (UserSummary) TableName() string {
	return "users"
}
