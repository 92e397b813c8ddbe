package appointment

import (
	"context"
	"time"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/store"
)

type Service struct {
	store    *store.Store
	validate *validator.Validator
}

func NewService(st *store.Store, v *validator.Validator) *Service {
	return &Service{store: st, validate: v}
}

func (s *Service) List(ctx context.Context, hospitalID int64, opts *model.ListOptions) ([]*model.Appointment, error) {
	if opts == nil {
		opts = &model.ListOptions{}
	}
	return s.store.Appointments.List(func(a *model.Appointment) bool {
		if a.HospitalID != hospitalID {
			return false
		}
		if opts.Status != "" && string(a.Status) != opts.Status {
			return false
		}
		if !opts.From.IsZero() && a.StartTime.Before(opts.From) {
			return false
		}
		if !opts.To.IsZero() && a.StartTime.After(opts.To) {
			return false
		}
		return true
	}), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	a, ok := s.store.Appointments.Get(id)
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, hospitalID int64, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Patients.Get(req.PatientID); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	for _, cid := range req.ClinicianIDs {
		if _, ok := s.store.Staff.Get(cid); !ok {
			return nil, apperrors.NotFound("clinician", nil)
		}
	}

	now := time.Now()
	a := &model.Appointment{
		HospitalID:   hospitalID,
		PatientID:    req.PatientID,
		ClinicianIDs: req.ClinicianIDs,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.AppointmentStatusScheduled,
		Reason:       req.Reason,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.Appointments.Create(a, nil)
	return a, nil
}

// Update merges the request into the appointment. Any status may be set
// to any other; no transitions are enforced. Historical records are
// retained indefinitely, so there is no delete.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	a, ok := s.store.Appointments.Update(id, func(a *model.Appointment) {
		if req.ClinicianIDs != nil {
			a.ClinicianIDs = *req.ClinicianIDs
		}
		if req.StartTime != nil {
			a.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			a.EndTime = *req.EndTime
		}
		if req.Status != nil {
			a.Status = *req.Status
		}
		if req.Reason != nil {
			a.Reason = *req.Reason
		}
		if req.Notes != nil {
			a.Notes = *req.Notes
		}
		a.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return a, nil
}
