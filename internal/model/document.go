package model

import "time"

type DocumentOwner string

const (
	DocumentOwnerStaff   DocumentOwner = "staff"
	DocumentOwnerPatient DocumentOwner = "patient"
)

// Document is file metadata scoped to a staff member or a patient.
// Deletion is immediate and irreversible.
type Document struct {
	ID          string        `json:"id"`
	OwnerType   DocumentOwner `json:"owner_type"`
	OwnerID     int64         `json:"owner_id"`
	Name        string        `json:"name"`
	Size        int64         `json:"size"`
	MIMEType    string        `json:"mime_type"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	UploadedAt  time.Time     `json:"uploaded_at"`
}

type CreateDocumentRequest struct {
	Name        string `json:"name" validate:"required"`
	Size        int64  `json:"size" validate:"gte=0"`
	MIMEType    string `json:"mime_type" validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// DocumentDownload is the opaque formatted payload served by the download
// endpoint.
type DocumentDownload struct {
	Document
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}
