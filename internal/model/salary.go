package model

import "time"

// TaxComponent is one deduction line of a salary structure.
type TaxComponent struct {
	Name       string  `json:"name" validate:"required"`
	Percentage float64 `json:"percentage"`
	Active     bool    `json:"active"`
}

// SalaryStructure overlays employment-financial data read-side only; the
// base employment record is untouched. Overlay key: staff:{id}:salary.
type SalaryStructure struct {
	StaffID    int64          `json:"staff_id"`
	BaseSalary float64        `json:"base_salary"`
	Taxes      []TaxComponent `json:"taxes"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ActiveTaxes returns only the active components.
func (s *SalaryStructure) ActiveTaxes() []TaxComponent {
	out := make([]TaxComponent, 0, len(s.Taxes))
	for _, t := range s.Taxes {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

type SaveSalaryStructureRequest struct {
	BaseSalary float64        `json:"base_salary" validate:"gte=0"`
	Taxes      []TaxComponent `json:"taxes" validate:"required,dive"`
}

// PayrollRow is one derived payroll line: roster data mapped through the
// specialty lookup tables, with any saved SalaryStructure taking
// precedence over the computed base salary.
type PayrollRow struct {
	StaffID       int64   `json:"staff_id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Specialty     string  `json:"specialty,omitempty"`
	Department    string  `json:"department"`
	BaseSalary    float64 `json:"base_salary"`
	NetSalary     float64 `json:"net_salary"`
	TaxDeductions float64 `json:"tax_deductions"`
	HasStructure  bool    `json:"has_structure"`
}
