package role

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

// recount computes the live projection role.StaffCount ==
// count(staff where staff.Role == role.Name). It runs on every read and
// is never maintained incrementally, so it cannot drift.
func (s *Service) recount(r *model.StaffRole) {
	n := 0
	for _, m := range s.store.Staff.List(nil) {
		if m.HospitalID == r.HospitalID && m.Role == r.Name {
			n++
		}
	}
	r.StaffCount = n
}

func (s *Service) List(ctx context.Context, hospitalID int64) ([]*model.StaffRole, error) {
	roles := s.store.StaffRoles.List(func(r *model.StaffRole) bool {
		return r.HospitalID == hospitalID
	})
	for _, r := range roles {
		s.recount(r)
	}
	return roles, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.StaffRole, error) {
	r, ok := s.store.StaffRoles.Get(id)
	if !ok {
		return nil, apperrors.NotFound("staff role", nil)
	}
	s.recount(r)
	return r, nil
}

func (s *Service) Create(ctx context.Context, hospitalID int64, req *model.CreateStaffRoleRequest) (*model.StaffRole, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &model.StaffRole{
		HospitalID:  hospitalID,
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.StaffRoles.Create(r, nil)
	s.recount(r)
	return r, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateStaffRoleRequest) (*model.StaffRole, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	_, ok := s.store.StaffRoles.Update(id, func(r *model.StaffRole) {
		if req.Name != nil {
			r.Name = *req.Name
		}
		if req.Description != nil {
			r.Description = *req.Description
		}
		if req.Permissions != nil {
			r.Permissions = *req.Permissions
		}
		r.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("staff role", nil)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if !s.store.StaffRoles.Delete(id) {
		return apperrors.NotFound("staff role", nil)
	}
	return nil
}
