package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/store"
)

type Service struct {
	store    *store.Store
	overlay  overlay.Store
	validate *validator.Validator
}

func NewService(st *store.Store, ov overlay.Store, v *validator.Validator) *Service {
	return &Service{store: st, overlay: ov, validate: v}
}

func extendedKey(id int64) string {
	return overlay.Key("patient", id, "extended")
}

// List returns patients for a hospital in insertion order. Exact-match
// filters apply before range filters, the search term last.
func (s *Service) List(ctx context.Context, hospitalID int64, opts *model.ListOptions) ([]*model.Patient, error) {
	if opts == nil {
		opts = &model.ListOptions{}
	}
	term := strings.ToLower(opts.Search)

	return s.store.Patients.List(func(p *model.Patient) bool {
		if p.HospitalID != hospitalID {
			return false
		}
		if opts.Status != "" && p.Status != opts.Status {
			return false
		}
		if !opts.From.IsZero() && p.CreatedAt.Before(opts.From) {
			return false
		}
		if !opts.To.IsZero() && p.CreatedAt.After(opts.To) {
			return false
		}
		if term != "" {
			hay := strings.ToLower(p.FirstName + " " + p.LastName + " " + p.MRN + " " + p.Email)
			if !strings.Contains(hay, term) {
				return false
			}
		}
		return true
	}), nil
}

// Create registers a patient on intake. The MRN is assigned
// deterministically from the count of patients that existed before this
// create, under the same lock that assigns the ID.
func (s *Service) Create(ctx context.Context, hospitalID int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Hospitals.Get(hospitalID); !ok {
		return nil, apperrors.NotFound("hospital", nil)
	}

	now := time.Now()
	p := &model.Patient{
		HospitalID:          hospitalID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		DateOfBirth:         req.DateOfBirth,
		Gender:              req.Gender,
		Address:             req.Address,
		Status:              string(model.PatientStatusActive),
		AssignedClinicianID: req.AssignedClinicianID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.ContactPreferences != nil {
		p.ContactPreferences = *req.ContactPreferences
	}

	s.store.Patients.Create(p, func(v *model.Patient, _ int64, prior int) {
		v.MRN = fmt.Sprintf("MRN%03d", prior+1)
	})
	return p, nil
}

// Get returns the patient with its overlay-backed extended fields.
func (s *Service) Get(ctx context.Context, id int64) (*model.PatientDetail, error) {
	p, ok := s.store.Patients.Get(id)
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}

	detail := &model.PatientDetail{Patient: *p}
	ext, err := overlay.GetJSON[model.PatientExtended](ctx, s.overlay, extendedKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return nil, err
	}
	detail.Extended = ext
	return detail, nil
}

// Update shallow-merges req into the patient. Omitted fields are
// preserved; the extended section, when present, replaces the durable
// slot wholesale (callers pass full sub-objects). Patients are never
// hard-deleted, so there is no Delete.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.PatientDetail, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Patients.Get(id); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}

	if req.Extended != nil {
		if err := overlay.PutJSON(ctx, s.overlay, extendedKey(id), req.Extended); err != nil {
			return nil, err
		}
	}

	_, ok := s.store.Patients.Update(id, func(p *model.Patient) {
		if req.FirstName != nil {
			p.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			p.LastName = *req.LastName
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if req.DateOfBirth != nil {
			p.DateOfBirth = req.DateOfBirth
		}
		if req.Gender != nil {
			p.Gender = *req.Gender
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		if req.AssignedClinicianID != nil {
			p.AssignedClinicianID = *req.AssignedClinicianID
		}
		if req.ContactPreferences != nil {
			p.ContactPreferences = *req.ContactPreferences
		}
		p.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}

	return s.Get(ctx, id)
}
