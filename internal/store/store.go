package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medboard/hospital-api/internal/model"
)

// Store owns every in-memory collection. It is injected into services so
// concurrent test instances stay independent; nothing here is a package
// level singleton. The whole tier resets on restart, overlay-backed
// fields do not.
type Store struct {
	Hospitals    *Collection[model.Hospital]
	Patients     *Collection[model.Patient]
	Staff        *Collection[model.StaffMember]
	StaffRoles   *Collection[model.StaffRole]
	Appointments *Collection[model.Appointment]
	Templates    *Collection[model.Template]

	Notifications *Collection[model.Notification]
	Outbound      *Collection[model.OutboundMessage]

	Payables     *Collection[model.PayableRecord]
	Receivables  *Collection[model.ReceivableRecord]
	PatientBills *Collection[model.PatientBill]
	Payments     *Collection[model.PaymentRecord]
	Transactions *Collection[model.TransactionRecord]

	Documents *DocumentCollection
}

func New() *Store {
	return &Store{
		Hospitals: NewCollection(
			func(v *model.Hospital) int64 { return v.ID },
			func(v *model.Hospital, id int64) { v.ID = id }),
		Patients: NewCollection(
			func(v *model.Patient) int64 { return v.ID },
			func(v *model.Patient, id int64) { v.ID = id }),
		Staff: NewCollection(
			func(v *model.StaffMember) int64 { return v.ID },
			func(v *model.StaffMember, id int64) { v.ID = id }),
		StaffRoles: NewCollection(
			func(v *model.StaffRole) int64 { return v.ID },
			func(v *model.StaffRole, id int64) { v.ID = id }),
		Appointments: NewCollection(
			func(v *model.Appointment) int64 { return v.ID },
			func(v *model.Appointment, id int64) { v.ID = id }),
		Templates: NewCollection(
			func(v *model.Template) int64 { return v.ID },
			func(v *model.Template, id int64) { v.ID = id }),
		Notifications: NewCollection(
			func(v *model.Notification) int64 { return v.ID },
			func(v *model.Notification, id int64) { v.ID = id }),
		Outbound: NewCollection(
			func(v *model.OutboundMessage) int64 { return v.ID },
			func(v *model.OutboundMessage, id int64) { v.ID = id }),
		Payables: NewCollection(
			func(v *model.PayableRecord) int64 { return v.ID },
			func(v *model.PayableRecord, id int64) { v.ID = id }),
		Receivables: NewCollection(
			func(v *model.ReceivableRecord) int64 { return v.ID },
			func(v *model.ReceivableRecord, id int64) { v.ID = id }),
		PatientBills: NewCollection(
			func(v *model.PatientBill) int64 { return v.ID },
			func(v *model.PatientBill, id int64) { v.ID = id }),
		Payments: NewCollection(
			func(v *model.PaymentRecord) int64 { return v.ID },
			func(v *model.PaymentRecord, id int64) { v.ID = id }),
		Transactions: NewCollection(
			func(v *model.TransactionRecord) int64 { return v.ID },
			func(v *model.TransactionRecord, id int64) { v.ID = id }),
		Documents: NewDocumentCollection(),
	}
}

// Seed loads the default fixtures: one hospital, the standard staff
// roles and an administrator account. Everything seeded here lives in
// memory only and comes back on every restart.
func (s *Store) Seed() {
	now := time.Now()

	s.Hospitals.Insert(&model.Hospital{
		ID:        1,
		Name:      "Medboard General Hospital",
		Email:     "info@medboard.example",
		Phone:     "+1-555-0100",
		Address:   "1 Hospital Drive",
		CreatedAt: now,
		UpdatedAt: now,
	})

	roles := []model.StaffRole{
		{HospitalID: 1, Name: "Administrator", Permissions: []string{"*"}},
		{HospitalID: 1, Name: "Doctor", Permissions: []string{"patients:read", "patients:write", "appointments:write"}},
		{HospitalID: 1, Name: "Nurse", Permissions: []string{"patients:read", "appointments:read"}},
		{HospitalID: 1, Name: "Receptionist", Permissions: []string{"appointments:write", "patients:read"}},
	}
	for i := range roles {
		roles[i].CreatedAt = now
		roles[i].UpdatedAt = now
		s.StaffRoles.Create(&roles[i], nil)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	s.Staff.Create(&model.StaffMember{
		HospitalID:   1,
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        "admin@medboard.example",
		Role:         "Administrator",
		Specialties:  []string{"administration"},
		Status:       string(model.StaffStatusActive),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil)

	templates := []model.Template{
		{HospitalID: 1, Name: "Payment Reminder", Channel: model.TemplateChannelEmail,
			Subject: "Payment reminder for invoice {{invoice}}",
			Content: "Dear {{name}},\n\nInvoice {{invoice}} for {{amount}} is due on {{due}}.\n\nRegards,\n{{hospital}}"},
		{HospitalID: 1, Name: "Appointment Reminder", Channel: model.TemplateChannelSMS,
			Content: "Reminder: appointment at {{hospital}} on {{date}}."},
	}
	for i := range templates {
		templates[i].CreatedAt = now
		templates[i].UpdatedAt = now
		s.Templates.Create(&templates[i], nil)
	}
}
