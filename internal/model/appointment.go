package model

import "time"

type AppointmentStatus string

// No transitions are enforced between these; any status may be set to any
// other.
const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type Appointment struct {
	ID           int64             `json:"id"`
	HospitalID   int64             `json:"hospital_id"`
	PatientID    int64             `json:"patient_id"`
	ClinicianIDs []int64           `json:"clinician_ids"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Status       AppointmentStatus `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID    int64     `json:"patient_id" validate:"required"`
	ClinicianIDs []int64   `json:"clinician_ids" validate:"min=1"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes" validate:"max=1000"`
}

type UpdateAppointmentRequest struct {
	ClinicianIDs *[]int64           `json:"clinician_ids"`
	StartTime    *time.Time         `json:"start_time"`
	EndTime      *time.Time         `json:"end_time"`
	Status       *AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	Reason       *string            `json:"reason"`
	Notes        *string            `json:"notes"`
}
