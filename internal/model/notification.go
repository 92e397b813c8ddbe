package model

import "time"

type OutboundStatus string

const (
	OutboundStatusPending OutboundStatus = "pending"
	OutboundStatusSent    OutboundStatus = "sent"
	OutboundStatusFailed  OutboundStatus = "failed"
)

// Notification is an in-app notification row shown on the dashboard.
type Notification struct {
	ID         int64     `json:"id"`
	HospitalID int64     `json:"hospital_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Category   string    `json:"category,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// OutboundMessage is a queued email/sms/voice message drained by the
// outbound worker.
type OutboundMessage struct {
	ID         int64           `json:"id"`
	HospitalID int64           `json:"hospital_id"`
	Channel    TemplateChannel `json:"channel"`
	Recipient  string          `json:"recipient"`
	Subject    string          `json:"subject,omitempty"`
	Body       string          `json:"body"`
	Status     OutboundStatus  `json:"status"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"last_error,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
}
