package models

import "time"

type Pharmacy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint         `gorm:"index;not null" json:"user_id"`
	User   *UserSummary `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Name          string `gorm:"size:150;not null" json:"name"`
	Address       string `gorm:"size:255;not null" json:"address"`
	Phone         string `gorm:"size:20;not null" json:"phone"`
	Email         string `gorm:"size:100" json:"email"`
	LicenseNumber string `gorm:"size:50" json:"license_number"`
	Location      string `gorm:"size:100" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID is the user allowed to mutate the pharmacy.
func (p *Pharmacy) OwnerID() uint {
	return p.UserID
}

// PharmacySummary is the pharmacy projection embedded in medicine
// responses.
type PharmacySummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (PharmacySummary) TableName() string {
	return "pharmacies"
}

func (p *Pharmacy) Summary() *PharmacySummary {
	return &PharmacySummary{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		Phone:    p.Phone,
		Location: p.Location,
	}
}
