package model

import "time"

type Hospital struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HospitalProfile holds the overlay-backed part of a hospital record.
// It survives restarts while the base record is reseeded.
type HospitalProfile struct {
	LicenseNumber string `json:"license_number,omitempty"`
	Website       string `json:"website,omitempty"`
	BedCapacity   int    `json:"bed_capacity,omitempty"`
	Departments   []string `json:"departments,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`
}

// HospitalDetail is the read-side view: base record plus overlay-backed
// profile.
type HospitalDetail struct {
	Hospital
	Profile *HospitalProfile `json:"profile,omitempty"`
}

type UpdateHospitalRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Profile *HospitalProfile `json:"profile"`
}
