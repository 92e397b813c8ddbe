package draft

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/service/document"
	"github.com/medboard/hospital-api/internal/service/staff"
	"github.com/medboard/hospital-api/internal/store"
)

// Service runs the staff-update wizard state machine:
// NoDraft -> InProgress(step 1..6) -> Completed | Abandoned.
// One draft per staff member, last write wins, overlay-backed so a page
// reload or process restart resumes where the user left off.
type Service struct {
	store     *store.Store
	overlay   overlay.Store
	staff     *staff.Service
	documents *document.Service
	validate  *validator.Validator
}

func NewService(st *store.Store, ov overlay.Store, staffSvc *staff.Service,
	docSvc *document.Service, v *validator.Validator) *Service {
	return &Service{store: st, overlay: ov, staff: staffSvc, documents: docSvc, validate: v}
}

func draftKey(staffID int64) string {
	return overlay.Key("staff", staffID, "draft")
}

// Save creates or overwrites the single draft for a staff member. The
// data payload shallow-merges onto the existing draft's payload; step and
// lastSavedAt are replaced outright. Overlapping auto-save ticks just
// race and the later write wins.
func (s *Service) Save(ctx context.Context, staffID int64, req *model.SaveDraftRequest) (*model.StaffUpdateDraft, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Staff.Get(staffID); !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}

	cur, err := overlay.GetJSON[model.StaffUpdateDraft](ctx, s.overlay, draftKey(staffID))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return nil, err
	}

	d := &model.StaffUpdateDraft{
		StaffID:     staffID,
		Step:        req.Step,
		Data:        req.Data,
		LastSavedAt: time.Now(),
	}
	if cur != nil {
		d.Data = cur.Data.Merge(req.Data)
	}
	if d.Data == nil {
		d.Data = model.JSONMap{}
	}

	if err := overlay.PutJSON(ctx, s.overlay, draftKey(staffID), d); err != nil {
		return nil, err
	}
	return d, nil
}

// Load returns the current draft, or (nil, nil) when there is none. It
// never mutates state.
func (s *Service) Load(ctx context.Context, staffID int64) (*model.StaffUpdateDraft, error) {
	d, err := overlay.GetJSON[model.StaffUpdateDraft](ctx, s.overlay, draftKey(staffID))
	if errors.Is(err, overlay.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Finalize merges the full wizard payload into the staff member's core
// record and each owned sub-record, each section independently optional,
// then deletes the draft. When the staff member does not exist it fails
// with NotFound and keeps the draft, so the user does not lose work.
// The multi-record write is best-effort atomic: there is no rollback of
// sections already applied when a later one fails.
func (s *Service) Finalize(ctx context.Context, staffID int64, req *model.FinalizeDraftRequest) (*model.StaffDetail, error) {
	if _, ok := s.store.Staff.Get(staffID); !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}

	if req.Core != nil {
		if _, err := s.staff.Update(ctx, staffID, req.Core); err != nil {
			return nil, err
		}
	}
	if req.Employment != nil {
		if err := s.staff.MergeEmployment(ctx, staffID, req.Employment); err != nil {
			return nil, err
		}
	}
	if req.Medical != nil {
		if err := s.staff.MergeMedical(ctx, staffID, req.Medical); err != nil {
			return nil, err
		}
	}
	for i := range req.Documents {
		if _, err := s.documents.Create(ctx, model.DocumentOwnerStaff, staffID, &req.Documents[i]); err != nil {
			return nil, err
		}
	}

	if err := s.overlay.Delete(ctx, draftKey(staffID)); err != nil {
		return nil, err
	}
	return s.staff.Get(ctx, staffID)
}

// Clear deletes the draft unconditionally. Clearing a missing draft is a
// no-op success.
func (s *Service) Clear(ctx context.Context, staffID int64) error {
	return s.overlay.Delete(ctx, draftKey(staffID))
}
