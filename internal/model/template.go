package model

import "time"

type TemplateChannel string

const (
	TemplateChannelEmail TemplateChannel = "email"
	TemplateChannelSMS   TemplateChannel = "sms"
	TemplateChannelVoice TemplateChannel = "voice"
)

// Template is communication content keyed by channel. UpdatedAt is
// refreshed on every mutation.
type Template struct {
	ID         int64           `json:"id"`
	HospitalID int64           `json:"hospital_id"`
	Name       string          `json:"name"`
	Channel    TemplateChannel `json:"channel"`
	Subject    string          `json:"subject,omitempty"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CreateTemplateRequest struct {
	Name    string          `json:"name" validate:"required"`
	Channel TemplateChannel `json:"channel" validate:"required,oneof=email sms voice"`
	Subject string          `json:"subject"`
	Content string          `json:"content" validate:"required"`
}

type UpdateTemplateRequest struct {
	Name    *string          `json:"name"`
	Channel *TemplateChannel `json:"channel" validate:"omitempty,oneof=email sms voice"`
	Subject *string          `json:"subject"`
	Content *string          `json:"content"`
}
