package model

import "time"

const (
	DraftMinStep = 1
	DraftMaxStep = 6
)

// StaffUpdateDraft is the single resumable snapshot of the staff
// information update wizard. Exactly one draft exists per staff member;
// saves are last-write-wins. Overlay key: staff:{id}:draft.
type StaffUpdateDraft struct {
	StaffID     int64     `json:"staff_id"`
	Step        int       `json:"step"`
	Data        JSONMap   `json:"data"`
	LastSavedAt time.Time `json:"last_saved_at"`
}

type SaveDraftRequest struct {
	Step int     `json:"step" validate:"required,min=1,max=6"`
	Data JSONMap `json:"data"`
}

// FinalizeDraftRequest carries the full wizard payload. Each section is
// independently optional and independently merged.
type FinalizeDraftRequest struct {
	Core       *UpdateStaffRequest     `json:"core"`
	Employment *StaffEmployment        `json:"employment"`
	Medical    *StaffMedical           `json:"medical"`
	Documents  []CreateDocumentRequest `json:"documents"`
}
