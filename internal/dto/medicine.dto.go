package dto

import (
	"strings"
	"time"
)

// ExpiryDate accepts either a calendar date or an RFC 3339 timestamp.
type ExpiryDate string

var expiryLayouts = []string{"2006-01-02", time.RFC3339}

// Time returns nil for an empty value.
func (d ExpiryDate) Time() (*time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return nil, true
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

type CreateMedicineRequest struct {
	PharmacyID           *uint      `json:"pharmacy_id,omitempty"`
	Name                 string     `json:"name"`
	Brand                string     `json:"brand"`
	Category             string     `json:"category"`
	Dosage               string     `json:"dosage"`
	Description          string     `json:"description"`
	Price                *float64   `json:"price"`
	Stock                *int       `json:"stock"`
	ExpiryDate           ExpiryDate `json:"expiry_date"`
	PrescriptionRequired bool       `json:"prescription_required"`
}

type UpdateMedicineRequest struct {
	Name                 *string    `json:"name,omitempty"`
	Brand                *string    `json:"brand,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Dosage               *string    `json:"dosage,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Price                *float64   `json:"price,omitempty"`
	Stock                *int       `json:"stock,omitempty"`
	ExpiryDate           ExpiryDate `json:"expiry_date,omitempty"`
	PrescriptionRequired *bool      `json:"prescription_required,omitempty"`
}
