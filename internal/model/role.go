package model

import "time"

// StaffRole groups staff members under a named role with a permission set.
// StaffCount is a projection over the staff collection: it is recomputed
// from live staff records on every read and never stored.
type StaffRole struct {
	ID          int64    `json:"id"`
	HospitalID  int64    `json:"hospital_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`

	StaffCount int `json:"staff_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateStaffRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type UpdateStaffRoleRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
}
