package model

import "time"

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	ID          int64      `json:"id"`
	HospitalID  int64      `json:"hospital_id"`
	MRN         string     `json:"mrn"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Address     string     `json:"address,omitempty"`
	Status      string     `json:"status"`

	// Weak reference: relation plus lookup, not ownership
	AssignedClinicianID int64 `json:"assigned_clinician_id,omitempty"`

	ContactPreferences ContactPreferences `json:"contact_preferences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PatientExtended holds overlay-backed fields that survive restarts.
type PatientExtended struct {
	BloodGroup        string   `json:"blood_group,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	ChronicConditions []string `json:"chronic_conditions,omitempty"`
	InsuranceProvider string   `json:"insurance_provider,omitempty"`
	InsuranceNumber   string   `json:"insurance_number,omitempty"`
	EmergencyContact  string   `json:"emergency_contact,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// PatientDetail is the read-side view: base record plus extended fields.
type PatientDetail struct {
	Patient
	Extended *PatientExtended `json:"extended,omitempty"`
}

type CreatePatientRequest struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other"`
	Address     string     `json:"address"`

	AssignedClinicianID int64               `json:"assigned_clinician_id"`
	ContactPreferences  *ContactPreferences `json:"contact_preferences"`
}

type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	Address     *string    `json:"address"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active inactive"`

	AssignedClinicianID *int64              `json:"assigned_clinician_id"`
	ContactPreferences  *ContactPreferences `json:"contact_preferences"`
	Extended            *PatientExtended    `json:"extended"`
}
