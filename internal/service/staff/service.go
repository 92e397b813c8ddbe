package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

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

func EmploymentKey(id int64) string { return overlay.Key("staff", id, "employment") }
func MedicalKey(id int64) string    { return overlay.Key("staff", id, "medical") }

// List returns clinicians for a hospital with the usual filters.
func (s *Service) List(ctx context.Context, hospitalID int64, opts *model.ListOptions) ([]*model.StaffMember, error) {
	if opts == nil {
		opts = &model.ListOptions{}
	}
	term := strings.ToLower(opts.Search)

	return s.store.Staff.List(func(m *model.StaffMember) bool {
		if m.HospitalID != hospitalID {
			return false
		}
		if opts.Status != "" && m.Status != opts.Status {
			return false
		}
		if !opts.From.IsZero() && m.CreatedAt.Before(opts.From) {
			return false
		}
		if !opts.To.IsZero() && m.CreatedAt.After(opts.To) {
			return false
		}
		if term != "" {
			hay := strings.ToLower(m.FirstName + " " + m.LastName + " " + m.Email + " " + m.Role)
			if !strings.Contains(hay, term) {
				return false
			}
		}
		return true
	}), nil
}

// Create hires a staff member. Employment and medical sections, when
// supplied, go straight to their overlay slots.
func (s *Service) Create(ctx context.Context, hospitalID int64, req *model.CreateStaffRequest) (*model.StaffDetail, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Hospitals.Get(hospitalID); !ok {
		return nil, apperrors.NotFound("hospital", nil)
	}

	now := time.Now()
	m := &model.StaffMember{
		HospitalID:  hospitalID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		Specialties: req.Specialties,
		Status:      string(model.StaffStatusActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		m.PasswordHash = string(hash)
	}
	id := s.store.Staff.Create(m, nil)

	if req.Employment != nil {
		if err := s.MergeEmployment(ctx, id, req.Employment); err != nil {
			return nil, err
		}
	}
	if req.Medical != nil {
		if err := s.MergeMedical(ctx, id, req.Medical); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Get returns the staff member with overlay-backed sub-records.
func (s *Service) Get(ctx context.Context, id int64) (*model.StaffDetail, error) {
	m, ok := s.store.Staff.Get(id)
	if !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}

	detail := &model.StaffDetail{StaffMember: *m}

	emp, err := overlay.GetJSON[model.StaffEmployment](ctx, s.overlay, EmploymentKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return nil, err
	}
	detail.Employment = emp

	med, err := overlay.GetJSON[model.StaffMedical](ctx, s.overlay, MedicalKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return nil, err
	}
	detail.Medical = med

	return detail, nil
}

// GetByEmail looks a staff member up for login.
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.StaffMember, error) {
	matches := s.store.Staff.List(func(m *model.StaffMember) bool {
		return strings.EqualFold(m.Email, email)
	})
	if len(matches) == 0 {
		return nil, apperrors.NotFound("staff member", nil)
	}
	return matches[0], nil
}

// Update shallow-merges the core fields and each supplied sub-record
// independently. Role reassignment needs no bookkeeping here: staff role
// counts are recomputed from this collection on every read.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.StaffDetail, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Staff.Get(id); !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}

	if req.Employment != nil {
		if err := s.MergeEmployment(ctx, id, req.Employment); err != nil {
			return nil, err
		}
	}
	if req.Medical != nil {
		if err := s.MergeMedical(ctx, id, req.Medical); err != nil {
			return nil, err
		}
	}

	s.store.Staff.Update(id, func(m *model.StaffMember) {
		if req.FirstName != nil {
			m.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			m.LastName = *req.LastName
		}
		if req.Email != nil {
			m.Email = *req.Email
		}
		if req.Phone != nil {
			m.Phone = *req.Phone
		}
		if req.Role != nil {
			m.Role = *req.Role
		}
		if req.Specialties != nil {
			m.Specialties = *req.Specialties
		}
		if req.Status != nil {
			m.Status = *req.Status
		}
		m.UpdatedAt = time.Now()
	})

	return s.Get(ctx, id)
}

// SetProfilePicture records the uploaded picture location.
func (s *Service) SetProfilePicture(ctx context.Context, id int64, fileName string) (*model.StaffDetail, error) {
	if fileName == "" {
		return nil, apperrors.InvalidInput("file name required", nil)
	}
	_, ok := s.store.Staff.Update(id, func(m *model.StaffMember) {
		m.ProfilePictureURL = fmt.Sprintf("/uploads/staff/%d/%s", id, fileName)
		m.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}
	return s.Get(ctx, id)
}

// MergeEmployment shallow-merges src onto the durable employment slot.
// The bank account is a nested structure and is replaced wholesale when
// supplied.
func (s *Service) MergeEmployment(ctx context.Context, id int64, src *model.StaffEmployment) error {
	cur, err := overlay.GetJSON[model.StaffEmployment](ctx, s.overlay, EmploymentKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return err
	}
	if cur == nil {
		cur = &model.StaffEmployment{}
	}
	if src.Department != "" {
		cur.Department = src.Department
	}
	if src.Designation != "" {
		cur.Designation = src.Designation
	}
	if src.ContractType != "" {
		cur.ContractType = src.ContractType
	}
	if src.JoiningDate != nil {
		cur.JoiningDate = src.JoiningDate
	}
	if src.BaseSalary != 0 {
		cur.BaseSalary = src.BaseSalary
	}
	if src.BankAccount != nil {
		cur.BankAccount = src.BankAccount
	}
	return overlay.PutJSON(ctx, s.overlay, EmploymentKey(id), cur)
}

// MergeMedical shallow-merges src onto the durable medical slot.
func (s *Service) MergeMedical(ctx context.Context, id int64, src *model.StaffMedical) error {
	cur, err := overlay.GetJSON[model.StaffMedical](ctx, s.overlay, MedicalKey(id))
	if err != nil && !errors.Is(err, overlay.ErrNotFound) {
		return err
	}
	if cur == nil {
		cur = &model.StaffMedical{}
	}
	if src.BloodGroup != "" {
		cur.BloodGroup = src.BloodGroup
	}
	if src.Allergies != nil {
		cur.Allergies = src.Allergies
	}
	if src.Conditions != nil {
		cur.Conditions = src.Conditions
	}
	if src.EmergencyContact != "" {
		cur.EmergencyContact = src.EmergencyContact
	}
	return overlay.PutJSON(ctx, s.overlay, MedicalKey(id), cur)
}
