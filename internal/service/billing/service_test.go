package billing

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/service/notification"
	"github.com/medboard/hospital-api/internal/service/template"
	"github.com/medboard/hospital-api/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	st.Seed()
	v := validator.New()
	notifier := notification.NewService(st, nil)
	templates := template.NewService(st, v)
	svc := NewService(st, templates, notifier, v, zerolog.Nop())
	return svc, st
}

func seedPatient(st *store.Store, first, last, email string) int64 {
	now := time.Now()
	p := &model.Patient{
		HospitalID: 1,
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Status:     string(model.PatientStatusActive),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return st.Patients.Create(p, nil)
}

func TestReceivablesLiveBillWinsOverManualLedger(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "Jane", "Doe", "jane@example.com")
	due := time.Now().Add(24 * time.Hour)

	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: pid, InvoiceNumber: "INV-100", Amount: 250, DueDate: due,
	}, nil)
	st.Receivables.Create(&model.ReceivableRecord{
		HospitalID: 1, Payer: "Acme Insurance", InvoiceNumber: "INV-100", Amount: 999, DueDate: due,
	}, nil)
	st.Receivables.Create(&model.ReceivableRecord{
		HospitalID: 1, Payer: "City Fund", InvoiceNumber: "INV-200", Amount: 80, DueDate: due,
	}, nil)

	rows, err := svc.Receivables(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byInvoice := map[string]*model.Receivable{}
	for _, r := range rows {
		// each invoice number appears exactly once
		assert.Nil(t, byInvoice[r.InvoiceNumber])
		byInvoice[r.InvoiceNumber] = r
	}
	require.Contains(t, byInvoice, "INV-100")
	assert.Equal(t, "patient", byInvoice["INV-100"].Source)
	assert.Equal(t, float64(250), byInvoice["INV-100"].Amount)
	assert.Equal(t, "Jane Doe", byInvoice["INV-100"].Payer)
	assert.Equal(t, "manual", byInvoice["INV-200"].Source)
}

func TestReceivablesSkipsBillWithMissingPatient(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "Jane", "Doe", "jane@example.com")
	due := time.Now().Add(24 * time.Hour)

	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: pid, InvoiceNumber: "INV-1", Amount: 10, DueDate: due,
	}, nil)
	// dangling patient reference: this bill is skipped, not fatal
	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: 9999, InvoiceNumber: "INV-2", Amount: 20, DueDate: due,
	}, nil)

	rows, err := svc.Receivables(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-1", rows[0].InvoiceNumber)
}

func TestReceivableStatusWindows(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  time.Time
		paid bool
		want model.ReceivableStatus
	}{
		{"paid always paid", now.AddDate(0, -6, 0), true, model.ReceivableStatusPaid},
		{"before due", now.Add(time.Hour), false, model.ReceivableStatusPending},
		{"just past due", now.Add(-time.Hour), false, model.ReceivableStatusOverdue},
		{"at ninety days", now.Add(-90 * 24 * time.Hour), false, model.ReceivableStatusOverdue},
		{"past ninety days", now.Add(-90*24*time.Hour - time.Minute), false, model.ReceivableStatusCollection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveStatus(tc.due, tc.paid, now))
		})
	}
}

func TestStatusDerivedAtReadTime(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "Jane", "Doe", "jane@example.com")

	due := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: pid, InvoiceNumber: "INV-1", Amount: 10, DueDate: due,
	}, nil)

	svc.WithClock(func() time.Time { return due.Add(-48 * time.Hour) })
	rows, err := svc.Receivables(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ReceivableStatusPending, rows[0].Status)

	// same record, later clock, different status: nothing was stored
	svc.WithClock(func() time.Time { return due.AddDate(0, 0, 120) })
	rows, err = svc.Receivables(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ReceivableStatusCollection, rows[0].Status)
}

func TestMarkPaidMovesBillToPaymentHistory(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "John", "Smith", "john@example.com")

	payDay := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return payDay })

	_, err := svc.CreatePatientBill(ctx, 1, pid, &model.CreatePatientBillRequest{
		InvoiceNumber: "INV-00123", Amount: 420.50, DueDate: payDay.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	payment, err := svc.MarkPaid(ctx, pid, "INV-00123")
	require.NoError(t, err)
	assert.Equal(t, "paid", payment.Status)
	assert.Equal(t, payDay, payment.Date)

	view, err := svc.PatientBilling(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, view.OutstandingBills)
	require.Len(t, view.PaymentHistory, 1)
	assert.Equal(t, "INV-00123", view.PaymentHistory[0].InvoiceNumber)
	assert.Zero(t, view.TotalOutstanding)

	// marking the same invoice again finds no outstanding bill
	_, err = svc.MarkPaid(ctx, pid, "INV-00123")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// a transaction row was appended alongside the payment
	txns, err := svc.Transactions(ctx, pid)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "payment", txns[0].Type)
	assert.Equal(t, "INV-00123", txns[0].Reference)
}

func TestPaymentHistoryNewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "John", "Smith", "john@example.com")
	due := time.Now().AddDate(0, 1, 0)

	for _, inv := range []string{"INV-A", "INV-B"} {
		_, err := svc.CreatePatientBill(ctx, 1, pid, &model.CreatePatientBillRequest{
			InvoiceNumber: inv, Amount: 100, DueDate: due,
		})
		require.NoError(t, err)
		_, err = svc.MarkPaid(ctx, pid, inv)
		require.NoError(t, err)
	}

	view, err := svc.PatientBilling(ctx, pid)
	require.NoError(t, err)
	require.Len(t, view.PaymentHistory, 2)
	assert.Equal(t, "INV-B", view.PaymentHistory[0].InvoiceNumber)
	assert.Equal(t, "INV-A", view.PaymentHistory[1].InvoiceNumber)
}

func TestBillingsTabsAndPeriod(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "Jane", "Doe", "jane@example.com")
	now := time.Now()

	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: pid, InvoiceNumber: "INV-NEW", Amount: 100, DueDate: now.AddDate(0, 0, -5),
	}, nil)
	st.PatientBills.Create(&model.PatientBill{
		HospitalID: 1, PatientID: pid, InvoiceNumber: "INV-OLD", Amount: 50, DueDate: now.AddDate(0, -8, 0),
	}, nil)
	st.Payables.Create(&model.PayableRecord{
		HospitalID: 1, Vendor: "MedSupply", InvoiceNumber: "PO-1", Amount: 75.25, DueDate: now,
	}, nil)

	tab, err := svc.Billings(ctx, 1, "receivables", "", nil)
	require.NoError(t, err)
	assert.Len(t, tab.Receivables, 2)
	assert.InDelta(t, 150, tab.Total, 0.001)

	tab, err = svc.Billings(ctx, 1, "receivables", "month", nil)
	require.NoError(t, err)
	require.Len(t, tab.Receivables, 1)
	assert.Equal(t, "INV-NEW", tab.Receivables[0].InvoiceNumber)

	tab, err = svc.Billings(ctx, 1, "payables", "", nil)
	require.NoError(t, err)
	require.Len(t, tab.Payables, 1)
	assert.InDelta(t, 75.25, tab.Total, 0.001)

	_, err = svc.Billings(ctx, 1, "bogus", "", nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.Billings(ctx, 1, "receivables", "decade", nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestSendReminderQueuesRenderedTemplate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	pid := seedPatient(st, "Jane", "Doe", "jane@example.com")

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreatePatientBill(ctx, 1, pid, &model.CreatePatientBillRequest{
		InvoiceNumber: "INV-7", Amount: 120.5, DueDate: due,
	})
	require.NoError(t, err)

	msg, err := svc.SendReminder(ctx, 1, pid)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", msg.Recipient)
	assert.Equal(t, model.OutboundStatusPending, msg.Status)
	assert.Contains(t, msg.Subject, "INV-7")
	assert.Contains(t, msg.Body, "Jane Doe")
	assert.Contains(t, msg.Body, "120.50")
	assert.Contains(t, msg.Body, "2026-09-30")
	assert.Contains(t, msg.Body, "Medboard General Hospital")

	queue := st.Outbound.List(nil)
	require.Len(t, queue, 1)

	notifications := st.Notifications.List(nil)
	require.Len(t, notifications, 1)
	assert.Equal(t, "billing", notifications[0].Category)
}

func TestSendReminderRequiresOutstandingBillAndEmail(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	noEmail := seedPatient(st, "No", "Email", "")
	_, err := svc.SendReminder(ctx, 1, noEmail)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	settled := seedPatient(st, "All", "Paid", "paid@example.com")
	_, err = svc.SendReminder(ctx, 1, settled)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
