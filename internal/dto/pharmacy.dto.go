package dto

type CreatePharmacyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	Location      string `json:"location"`
}

type UpdatePharmacyRequest struct {
	Name          *string `json:"name,omitempty"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Location      *string `json:"location,omitempty"`
}
