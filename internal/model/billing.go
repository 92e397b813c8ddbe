package model

import "time"

// ReceivableStatus is derived by comparing a bill's due date to "now" at
// read time; it is never stored.
type ReceivableStatus string

const (
	ReceivableStatusPending    ReceivableStatus = "pending"
	ReceivableStatusOverdue    ReceivableStatus = "overdue"
	ReceivableStatusCollection ReceivableStatus = "collection"
	ReceivableStatusPaid       ReceivableStatus = "paid"
)

// PayableRecord is a manually entered accounts-payable ledger row.
type PayableRecord struct {
	ID            int64     `json:"id"`
	HospitalID    int64     `json:"hospital_id"`
	Vendor        string    `json:"vendor"`
	Category      string    `json:"category,omitempty"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"due_date"`
	Paid          bool      `json:"paid"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReceivableRecord is a manually entered accounts-receivable ledger row.
// It never overrides a live patient bill carrying the same invoice number.
type ReceivableRecord struct {
	ID            int64     `json:"id"`
	HospitalID    int64     `json:"hospital_id"`
	Payer         string    `json:"payer"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"due_date"`
	Paid          bool      `json:"paid"`
	CreatedAt     time.Time `json:"created_at"`
}

// PatientBill is a live per-patient bill; outstanding bills feed the
// receivables rollup.
type PatientBill struct {
	ID            int64      `json:"id"`
	HospitalID    int64      `json:"hospital_id"`
	PatientID     int64      `json:"patient_id"`
	InvoiceNumber string     `json:"invoice_number"`
	Description   string     `json:"description,omitempty"`
	Amount        float64    `json:"amount"`
	IssuedAt      time.Time  `json:"issued_at"`
	DueDate       time.Time  `json:"due_date"`
	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// PaymentRecord is appended when a bill is marked paid.
type PaymentRecord struct {
	ID            int64     `json:"id"`
	HospitalID    int64     `json:"hospital_id"`
	PatientID     int64     `json:"patient_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

// TransactionRecord is a per-patient money movement row.
type TransactionRecord struct {
	ID         int64     `json:"id"`
	HospitalID int64     `json:"hospital_id"`
	PatientID  int64     `json:"patient_id"`
	Type       string    `json:"type"`
	Reference  string    `json:"reference,omitempty"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
}

// Receivable is one row of the derived accounts-receivable view. Source is
// either "manual" (ledger) or "patient" (live bill).
type Receivable struct {
	InvoiceNumber string           `json:"invoice_number"`
	Source        string           `json:"source"`
	Payer         string           `json:"payer"`
	PatientID     int64            `json:"patient_id,omitempty"`
	Amount        float64          `json:"amount"`
	DueDate       time.Time        `json:"due_date"`
	Status        ReceivableStatus `json:"status"`
}

// PatientBilling is the per-patient billing view.
type PatientBilling struct {
	PatientID        int64           `json:"patient_id"`
	OutstandingBills []PatientBill   `json:"outstanding_bills"`
	PaymentHistory   []PaymentRecord `json:"payment_history"`
	TotalOutstanding float64         `json:"total_outstanding"`
}

type CreatePayableRequest struct {
	Vendor        string    `json:"vendor" validate:"required"`
	Category      string    `json:"category"`
	InvoiceNumber string    `json:"invoice_number" validate:"required"`
	Amount        float64   `json:"amount" validate:"gt=0"`
	DueDate       time.Time `json:"due_date" validate:"required"`
}

type CreateReceivableRequest struct {
	Payer         string    `json:"payer" validate:"required"`
	InvoiceNumber string    `json:"invoice_number" validate:"required"`
	Amount        float64   `json:"amount" validate:"gt=0"`
	DueDate       time.Time `json:"due_date" validate:"required"`
}

type CreatePatientBillRequest struct {
	InvoiceNumber string    `json:"invoice_number" validate:"required"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount" validate:"gt=0"`
	DueDate       time.Time `json:"due_date" validate:"required"`
}

type MarkPaidRequest struct {
	InvoiceNumber string `json:"invoice_number" validate:"required"`
}

type CreateTransactionRequest struct {
	Type      string  `json:"type" validate:"required,oneof=charge payment refund adjustment"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount" validate:"required"`
}
