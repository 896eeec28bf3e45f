package models

import "time"

type Medicine struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PharmacyID uint             `gorm:"index;not null" json:"pharmacy_id"`
	Pharmacy   *PharmacySummary `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`

	Name                 string     `gorm:"size:150;not null;index" json:"name"`
	Brand                string     `gorm:"size:100" json:"brand"`
	Category             string     `gorm:"size:50" json:"category"`
	Dosage               string     `gorm:"size:50" json:"dosage"`
	Description          string     `gorm:"type:text" json:"description"`
	Price                float64    `gorm:"not null" json:"price"`
	Stock                int        `gorm:"not null" json:"stock"`
	ExpiryDate           *time.Time `json:"expiry_date"`
	PrescriptionRequired bool       `gorm:"default:false" json:"prescription_required"`
	ImageURL             string     `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID is the pharmacy allowed to mutate the medicine.
func (m *Medicine) OwnerID() uint {
	return m.PharmacyID
}
