package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/store"
)

// Policy bounds salary-structure validation. The tax window and count
// come from configuration rather than constants: they mirror observed UI
// copy, not a confirmed backend invariant.
type Policy struct {
	MinTaxPercent float64
	MaxTaxPercent float64
	MinTaxes      int
	MaxTaxes      int
}

func DefaultPolicy() Policy {
	return Policy{MinTaxPercent: 5, MaxTaxPercent: 15, MinTaxes: 2, MaxTaxes: 3}
}

// Specialty lookup tables used to derive payroll rows from the roster.
var (
	specialtyDepartments = map[string]string{
		"cardiology":     "Cardiology",
		"neurology":      "Neurology",
		"pediatrics":     "Pediatrics",
		"orthopedics":    "Orthopedics",
		"radiology":      "Radiology",
		"oncology":       "Oncology",
		"general":        "General Medicine",
		"administration": "Administration",
		"nursing":        "Nursing",
	}
	specialtyBaseSalaries = map[string]float64{
		"cardiology":     220000,
		"neurology":      210000,
		"pediatrics":     160000,
		"orthopedics":    200000,
		"radiology":      180000,
		"oncology":       215000,
		"general":        140000,
		"administration": 90000,
		"nursing":        75000,
	}
	defaultDepartment = "General Medicine"
	defaultBaseSalary = float64(100000)
)

type Service struct {
	store    *store.Store
	overlay  overlay.Store
	validate *validator.Validator
	policy   Policy
}

func NewService(st *store.Store, ov overlay.Store, v *validator.Validator, policy Policy) *Service {
	if policy.MaxTaxes == 0 {
		policy = DefaultPolicy()
	}
	return &Service{store: st, overlay: ov, validate: v, policy: policy}
}

func salaryKey(staffID int64) string {
	return overlay.Key("staff", staffID, "salary")
}

// GetStructure returns the saved salary structure for a staff member, or
// NotFound when none was saved.
func (s *Service) GetStructure(ctx context.Context, staffID int64) (*model.SalaryStructure, error) {
	if _, ok := s.store.Staff.Get(staffID); !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}
	st, err := overlay.GetJSON[model.SalaryStructure](ctx, s.overlay, salaryKey(staffID))
	if errors.Is(err, overlay.ErrNotFound) {
		return nil, apperrors.NotFound("salary structure", nil)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SaveStructure validates and writes the structure through the durable
// overlay so it survives restarts.
func (s *Service) SaveStructure(ctx context.Context, staffID int64, req *model.SaveSalaryStructureRequest) (*model.SalaryStructure, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Staff.Get(staffID); !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}

	active := 0
	for _, t := range req.Taxes {
		if !t.Active {
			continue
		}
		active++
		if t.Percentage < s.policy.MinTaxPercent || t.Percentage > s.policy.MaxTaxPercent {
			return nil, apperrors.InvalidInput(
				fmt.Sprintf("tax %q percentage must be between %v and %v",
					t.Name, s.policy.MinTaxPercent, s.policy.MaxTaxPercent), nil)
		}
	}
	if active < s.policy.MinTaxes || active > s.policy.MaxTaxes {
		return nil, apperrors.InvalidInput(
			fmt.Sprintf("between %d and %d active taxes required", s.policy.MinTaxes, s.policy.MaxTaxes), nil)
	}

	st := &model.SalaryStructure{
		StaffID:    staffID,
		BaseSalary: req.BaseSalary,
		Taxes:      req.Taxes,
		UpdatedAt:  time.Now(),
	}
	if err := overlay.PutJSON(ctx, s.overlay, salaryKey(staffID), st); err != nil {
		return nil, err
	}
	return st, nil
}

// NetSalary computes net pay with decimal arithmetic:
// net = max(0, base - Σ(base × pct/100)), deductions = Σ(base × pct/100).
func NetSalary(base float64, taxes []model.TaxComponent) (net, deductions float64) {
	b := decimal.NewFromFloat(base)
	hundred := decimal.NewFromInt(100)

	total := decimal.Zero
	for _, t := range taxes {
		if !t.Active {
			continue
		}
		total = total.Add(b.Mul(decimal.NewFromFloat(t.Percentage)).Div(hundred))
	}

	n := b.Sub(total)
	if n.IsNegative() {
		n = decimal.Zero
	}
	net, _ = n.Round(2).Float64()
	deductions, _ = total.Round(2).Float64()
	return net, deductions
}

// Payroll derives one row per staff member: the roster mapped through the
// specialty tables, with any saved structure overriding the computed base
// salary and contributing the display deduction fields. Recomputed on
// every read.
func (s *Service) Payroll(ctx context.Context, hospitalID int64) ([]*model.PayrollRow, error) {
	staff := s.store.Staff.List(func(m *model.StaffMember) bool {
		return m.HospitalID == hospitalID
	})

	rows := make([]*model.PayrollRow, 0, len(staff))
	for _, m := range staff {
		row := &model.PayrollRow{
			StaffID:    m.ID,
			Name:       m.FirstName + " " + m.LastName,
			Role:       m.Role,
			Department: defaultDepartment,
			BaseSalary: defaultBaseSalary,
		}
		if len(m.Specialties) > 0 {
			row.Specialty = m.Specialties[0]
			if d, ok := specialtyDepartments[row.Specialty]; ok {
				row.Department = d
			}
			if b, ok := specialtyBaseSalaries[row.Specialty]; ok {
				row.BaseSalary = b
			}
		}

		st, err := overlay.GetJSON[model.SalaryStructure](ctx, s.overlay, salaryKey(m.ID))
		if err != nil && !errors.Is(err, overlay.ErrNotFound) {
			return nil, err
		}
		if st != nil {
			row.BaseSalary = st.BaseSalary
			row.HasStructure = true
			row.NetSalary, row.TaxDeductions = NetSalary(st.BaseSalary, st.Taxes)
		} else {
			row.NetSalary = row.BaseSalary
		}
		rows = append(rows, row)
	}
	return rows, nil
}
