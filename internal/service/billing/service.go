package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/service/notification"
	"github.com/medboard/hospital-api/internal/service/template"
	"github.com/medboard/hospital-api/internal/store"
)

// collectionThreshold is how far past due a receivable moves from
// "overdue" to "collection".
const collectionThreshold = 90 * 24 * time.Hour

type Service struct {
	store     *store.Store
	templates *template.Service
	notifier  *notification.Service
	validate  *validator.Validator
	logger    zerolog.Logger

	// now is injected so status derivation is testable against a fixed
	// clock
	now func() time.Time
}

func NewService(st *store.Store, templates *template.Service, notifier *notification.Service,
	v *validator.Validator, logger zerolog.Logger) *Service {
	return &Service{
		store:     st,
		templates: templates,
		notifier:  notifier,
		validate:  v,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// deriveStatus compares a due date to "now" at read time.
func deriveStatus(due time.Time, paid bool, now time.Time) model.ReceivableStatus {
	if paid {
		return model.ReceivableStatusPaid
	}
	if now.Before(due) {
		return model.ReceivableStatusPending
	}
	if now.Sub(due) <= collectionThreshold {
		return model.ReceivableStatusOverdue
	}
	return model.ReceivableStatusCollection
}

// Receivables computes the accounts-receivable rollup: the manual ledger
// unioned with every patient's live outstanding bills, deduplicated by
// invoice number. A live bill always wins over a manual row carrying the
// same number. The view is recomputed on every read and never cached;
// bill state can change between reads. A failing per-patient lookup
// skips that patient's contribution and continues.
func (s *Service) Receivables(ctx context.Context, hospitalID int64) ([]*model.Receivable, error) {
	now := s.now()
	seen := make(map[string]bool)
	out := make([]*model.Receivable, 0)

	bills := s.store.PatientBills.List(func(b *model.PatientBill) bool {
		return b.HospitalID == hospitalID
	})
	for _, b := range bills {
		if seen[b.InvoiceNumber] {
			continue
		}
		p, ok := s.store.Patients.Get(b.PatientID)
		if !ok {
			// partial results beat total failure
			s.logger.Warn().Int64("patient_id", b.PatientID).Str("invoice", b.InvoiceNumber).
				Msg("skipping receivable: patient lookup failed")
			continue
		}
		seen[b.InvoiceNumber] = true
		out = append(out, &model.Receivable{
			InvoiceNumber: b.InvoiceNumber,
			Source:        "patient",
			Payer:         p.FirstName + " " + p.LastName,
			PatientID:     b.PatientID,
			Amount:        b.Amount,
			DueDate:       b.DueDate,
			Status:        deriveStatus(b.DueDate, b.Paid, now),
		})
	}

	manual := s.store.Receivables.List(func(r *model.ReceivableRecord) bool {
		return r.HospitalID == hospitalID
	})
	for _, r := range manual {
		if seen[r.InvoiceNumber] {
			// the manual ledger never overrides a live bill
			continue
		}
		seen[r.InvoiceNumber] = true
		out = append(out, &model.Receivable{
			InvoiceNumber: r.InvoiceNumber,
			Source:        "manual",
			Payer:         r.Payer,
			Amount:        r.Amount,
			DueDate:       r.DueDate,
			Status:        deriveStatus(r.DueDate, r.Paid, now),
		})
	}
	return out, nil
}

func (s *Service) Payables(ctx context.Context, hospitalID int64) ([]*model.PayableRecord, error) {
	return s.store.Payables.List(func(p *model.PayableRecord) bool {
		return p.HospitalID == hospitalID
	}), nil
}

func (s *Service) CreatePayable(ctx context.Context, hospitalID int64, req *model.CreatePayableRequest) (*model.PayableRecord, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	p := &model.PayableRecord{
		HospitalID:    hospitalID,
		Vendor:        req.Vendor,
		Category:      req.Category,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		CreatedAt:     s.now(),
	}
	s.store.Payables.Create(p, nil)
	return p, nil
}

func (s *Service) CreateReceivable(ctx context.Context, hospitalID int64, req *model.CreateReceivableRequest) (*model.ReceivableRecord, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	r := &model.ReceivableRecord{
		HospitalID:    hospitalID,
		Payer:         req.Payer,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		CreatedAt:     s.now(),
	}
	s.store.Receivables.Create(r, nil)
	return r, nil
}

// periodCutoff maps the billings ?period= value to the earliest due date
// included. Empty means everything.
func (s *Service) periodCutoff(period string) (time.Time, error) {
	now := s.now()
	switch period {
	case "":
		return time.Time{}, nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "quarter":
		return now.AddDate(0, -3, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, apperrors.InvalidInput("unknown period "+period, nil)
	}
}

// BillingsTab is the payload behind GET /billings?tab=&period=.
type BillingsTab struct {
	Tab         string                 `json:"tab"`
	Payables    []*model.PayableRecord `json:"payables,omitempty"`
	Receivables []*model.Receivable    `json:"receivables,omitempty"`
	Payroll     interface{}            `json:"payroll,omitempty"`
	Total       float64                `json:"total"`
}

// PayrollSource lets the billing dashboard embed the payroll view
// without a package cycle.
type PayrollSource interface {
	Payroll(ctx context.Context, hospitalID int64) ([]*model.PayrollRow, error)
}

// Billings serves the dashboard tabs. Totals use decimal sums.
func (s *Service) Billings(ctx context.Context, hospitalID int64, tab, period string, payroll PayrollSource) (*BillingsTab, error) {
	cutoff, err := s.periodCutoff(period)
	if err != nil {
		return nil, err
	}

	switch tab {
	case "", "receivables":
		rows, err := s.Receivables(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		kept := rows[:0]
		for _, r := range rows {
			if !cutoff.IsZero() && r.DueDate.Before(cutoff) {
				continue
			}
			kept = append(kept, r)
			total = total.Add(decimal.NewFromFloat(r.Amount))
		}
		t, _ := total.Round(2).Float64()
		return &BillingsTab{Tab: "receivables", Receivables: kept, Total: t}, nil

	case "payables":
		rows, err := s.Payables(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		kept := rows[:0]
		for _, p := range rows {
			if !cutoff.IsZero() && p.DueDate.Before(cutoff) {
				continue
			}
			kept = append(kept, p)
			total = total.Add(decimal.NewFromFloat(p.Amount))
		}
		t, _ := total.Round(2).Float64()
		return &BillingsTab{Tab: "payables", Payables: kept, Total: t}, nil

	case "payroll":
		rows, err := payroll.Payroll(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(decimal.NewFromFloat(r.NetSalary))
		}
		t, _ := total.Round(2).Float64()
		return &BillingsTab{Tab: "payroll", Payroll: rows, Total: t}, nil

	default:
		return nil, apperrors.InvalidInput("unknown tab "+tab, nil)
	}
}

// PatientBilling returns the per-patient view: outstanding bills in issue
// order, payment history newest first.
func (s *Service) PatientBilling(ctx context.Context, patientID int64) (*model.PatientBilling, error) {
	if _, ok := s.store.Patients.Get(patientID); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}

	outstanding := make([]model.PatientBill, 0)
	total := decimal.Zero
	for _, b := range s.store.PatientBills.List(func(b *model.PatientBill) bool {
		return b.PatientID == patientID && !b.Paid
	}) {
		outstanding = append(outstanding, *b)
		total = total.Add(decimal.NewFromFloat(b.Amount))
	}

	history := make([]model.PaymentRecord, 0)
	for _, p := range s.store.Payments.List(func(p *model.PaymentRecord) bool {
		return p.PatientID == patientID
	}) {
		history = append(history, *p)
	}
	// newest payment at the head
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].ID > history[j].ID
	})

	t, _ := total.Round(2).Float64()
	return &model.PatientBilling{
		PatientID:        patientID,
		OutstandingBills: outstanding,
		PaymentHistory:   history,
		TotalOutstanding: t,
	}, nil
}

func (s *Service) CreatePatientBill(ctx context.Context, hospitalID, patientID int64, req *model.CreatePatientBillRequest) (*model.PatientBill, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Patients.Get(patientID); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}

	b := &model.PatientBill{
		HospitalID:    hospitalID,
		PatientID:     patientID,
		InvoiceNumber: req.InvoiceNumber,
		Description:   req.Description,
		Amount:        req.Amount,
		IssuedAt:      s.now(),
		DueDate:       req.DueDate,
	}
	s.store.PatientBills.Create(b, nil)
	return b, nil
}

// MarkPaid moves a bill out of the outstanding set and onto the head of
// the payment history, dated today.
func (s *Service) MarkPaid(ctx context.Context, patientID int64, invoiceNumber string) (*model.PaymentRecord, error) {
	bills := s.store.PatientBills.List(func(b *model.PatientBill) bool {
		return b.PatientID == patientID && b.InvoiceNumber == invoiceNumber && !b.Paid
	})
	if len(bills) == 0 {
		return nil, apperrors.NotFound("outstanding bill", nil)
	}
	bill := bills[0]

	now := s.now()
	s.store.PatientBills.Update(bill.ID, func(b *model.PatientBill) {
		b.Paid = true
		b.PaidAt = &now
	})

	payment := &model.PaymentRecord{
		HospitalID:    bill.HospitalID,
		PatientID:     patientID,
		InvoiceNumber: invoiceNumber,
		Amount:        bill.Amount,
		Status:        "paid",
		Date:          now,
	}
	s.store.Payments.Create(payment, nil)

	s.store.Transactions.Create(&model.TransactionRecord{
		HospitalID: bill.HospitalID,
		PatientID:  patientID,
		Type:       "payment",
		Reference:  invoiceNumber,
		Amount:     bill.Amount,
		Date:       now,
	}, nil)

	return payment, nil
}

func (s *Service) Transactions(ctx context.Context, patientID int64) ([]*model.TransactionRecord, error) {
	if _, ok := s.store.Patients.Get(patientID); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return s.store.Transactions.List(func(t *model.TransactionRecord) bool {
		return t.PatientID == patientID
	}), nil
}

func (s *Service) AddTransaction(ctx context.Context, hospitalID, patientID int64, req *model.CreateTransactionRequest) (*model.TransactionRecord, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Patients.Get(patientID); !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	t := &model.TransactionRecord{
		HospitalID: hospitalID,
		PatientID:  patientID,
		Type:       req.Type,
		Reference:  req.Reference,
		Amount:     req.Amount,
		Date:       s.now(),
	}
	s.store.Transactions.Create(t, nil)
	return t, nil
}

// SendReminder renders the payment-reminder template for the patient's
// oldest outstanding bill and enqueues it on the outbound queue.
func (s *Service) SendReminder(ctx context.Context, hospitalID, patientID int64) (*model.OutboundMessage, error) {
	p, ok := s.store.Patients.Get(patientID)
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	if p.Email == "" {
		return nil, apperrors.InvalidInput("patient has no email on file", nil)
	}

	billing, err := s.PatientBilling(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(billing.OutstandingBills) == 0 {
		return nil, apperrors.InvalidInput("patient has no outstanding bills", nil)
	}
	bill := billing.OutstandingBills[0]

	hospital, _ := s.store.Hospitals.Get(hospitalID)
	hospitalName := ""
	if hospital != nil {
		hospitalName = hospital.Name
	}

	tpl, err := s.templates.FindByName(ctx, hospitalID, "Payment Reminder", model.TemplateChannelEmail)
	if err != nil {
		return nil, err
	}

	vars := map[string]string{
		"name":     p.FirstName + " " + p.LastName,
		"invoice":  bill.InvoiceNumber,
		"amount":   fmt.Sprintf("%.2f", bill.Amount),
		"due":      bill.DueDate.Format("2006-01-02"),
		"hospital": hospitalName,
	}

	msg := s.notifier.Enqueue(ctx, &model.OutboundMessage{
		HospitalID: hospitalID,
		Channel:    model.TemplateChannelEmail,
		Recipient:  p.Email,
		Subject:    template.Render(tpl.Subject, vars),
		Body:       template.Render(tpl.Content, vars),
	})
	s.notifier.Notify(ctx, hospitalID,
		"Payment reminder queued",
		fmt.Sprintf("Reminder for invoice %s queued to %s", bill.InvoiceNumber, p.Email),
		"billing")
	return msg, nil
}
