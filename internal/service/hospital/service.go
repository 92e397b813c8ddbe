package hospital

import (
	"context"
	"errors"
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

func profileKey(id int64) string {
	return overlay.Key("hospital", id, "profile")
}

// Get returns the hospital with its overlay-backed profile. An overlay
// hit wins over the in-memory default.
func (s *Service) Get(ctx context.Context, id int64) (*model.HospitalDetail, error) {
	h, ok := s.store.Hospitals.Get(id)
	if !ok {
		return nil, apperrors.NotFound("hospital", nil)
	}

	detail := &model.HospitalDetail{Hospital: *h}

	profile, err := overlay.GetJSON[model.HospitalProfile](ctx, s.overlay, profileKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return nil, err
	}
	detail.Profile = profile
	return detail, nil
}

// Update shallow-merges req into the hospital record; the profile section
// is written through the durable overlay.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateHospitalRequest) (*model.HospitalDetail, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	if req.Profile != nil {
		// write-through: the overlay write happens first so a storage
		// failure never leaves memory ahead of the durable tier
		if err := overlay.PutJSON(ctx, s.overlay, profileKey(id), req.Profile); err != nil {
			return nil, err
		}
	}

	_, ok := s.store.Hospitals.Update(id, func(h *model.Hospital) {
		if req.Name != nil {
			h.Name = *req.Name
		}
		if req.Email != nil {
			h.Email = *req.Email
		}
		if req.Phone != nil {
			h.Phone = *req.Phone
		}
		if req.Address != nil {
			h.Address = *req.Address
		}
		h.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("hospital", nil)
	}

	return s.Get(ctx, id)
}
