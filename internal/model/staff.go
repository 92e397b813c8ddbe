package model

import "time"

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusOnLeave  StaffStatus = "on_leave"
)

// StaffMember is a clinician or other hospital employee. The Role field is
// a free string matched against StaffRole.Name when role counts are
// recomputed.
type StaffMember struct {
	ID          int64    `json:"id"`
	HospitalID  int64    `json:"hospital_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties"`
	Status      string   `json:"status"`

	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	PasswordHash      string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BankAccount struct {
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
}

// StaffEmployment is the overlay-backed employment sub-record, owned
// exclusively by its staff parent.
type StaffEmployment struct {
	Department   string       `json:"department,omitempty"`
	Designation  string       `json:"designation,omitempty"`
	ContractType string       `json:"contract_type,omitempty"`
	JoiningDate  *time.Time   `json:"joining_date,omitempty"`
	BaseSalary   float64      `json:"base_salary,omitempty"`
	BankAccount  *BankAccount `json:"bank_account,omitempty"`
}

// StaffMedical is the overlay-backed medical sub-record.
type StaffMedical struct {
	BloodGroup       string   `json:"blood_group,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	Conditions       []string `json:"conditions,omitempty"`
	EmergencyContact string   `json:"emergency_contact,omitempty"`
}

// StaffDetail is the read-side view: base record plus owned sub-records.
type StaffDetail struct {
	StaffMember
	Employment *StaffEmployment `json:"employment,omitempty"`
	Medical    *StaffMedical    `json:"medical,omitempty"`
}

type CreateStaffRequest struct {
	FirstName   string   `json:"first_name" validate:"required"`
	LastName    string   `json:"last_name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role" validate:"required"`
	Specialties []string `json:"specialties" validate:"min=1"`
	Password    string   `json:"password" validate:"omitempty,min=8"`

	Employment *StaffEmployment `json:"employment"`
	Medical    *StaffMedical    `json:"medical"`
}

type UpdateStaffRequest struct {
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Phone       *string   `json:"phone"`
	Role        *string   `json:"role"`
	Specialties *[]string `json:"specialties"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active inactive on_leave"`

	Employment *StaffEmployment `json:"employment"`
	Medical    *StaffMedical    `json:"medical"`
}
