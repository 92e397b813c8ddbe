package billing

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/billing"
	"github.com/medboard/hospital-api/internal/service/payroll"
)

type Handler struct {
	service *billing.Service
	payroll *payroll.Service
}

func NewHandler(service *billing.Service, payrollSvc *payroll.Service) *Handler {
	return &Handler{service: service, payroll: payrollSvc}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/billings", Handler: h.Billings},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/payroll", Handler: h.Payroll},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/payables", Handler: h.CreatePayable},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/receivables", Handler: h.CreateReceivable},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/salary-structure", Handler: h.GetSalaryStructure},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/staff/:staffID/salary-structure", Handler: h.SaveSalaryStructure},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing", Handler: h.PatientBilling},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing", Handler: h.CreatePatientBill},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing/mark-paid", Handler: h.MarkPaid},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing/send-reminder", Handler: h.SendReminder},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing/transactions", Handler: h.Transactions},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients/:patientID/billing/transactions", Handler: h.AddTransaction},
	}
}

func (h *Handler) Billings(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	tab, err := h.service.Billings(ctx, hospitalID, req.Query.Get("tab"), req.Query.Get("period"), h.payroll)
	if err != nil {
		return nil, err
	}
	return router.OK(tab), nil
}

func (h *Handler) Payroll(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	rows, err := h.payroll.Payroll(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return router.OK(rows), nil
}

func (h *Handler) CreatePayable(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreatePayableRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	p, err := h.service.CreatePayable(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(p), nil
}

func (h *Handler) CreateReceivable(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreateReceivableRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	r, err := h.service.CreateReceivable(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(r), nil
}

func (h *Handler) GetSalaryStructure(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	st, err := h.payroll.GetStructure(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return router.OK(st), nil
}

func (h *Handler) SaveSalaryStructure(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	var body model.SaveSalaryStructureRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	st, err := h.payroll.SaveStructure(ctx, staffID, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(st), nil
}

func (h *Handler) PatientBilling(ctx context.Context, req *router.Request) (*router.Response, error) {
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	view, err := h.service.PatientBilling(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return router.OK(view), nil
}

func (h *Handler) CreatePatientBill(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	var body model.CreatePatientBillRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	b, err := h.service.CreatePatientBill(ctx, hospitalID, patientID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(b), nil
}

func (h *Handler) MarkPaid(ctx context.Context, req *router.Request) (*router.Response, error) {
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	var body model.MarkPaidRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	payment, err := h.service.MarkPaid(ctx, patientID, body.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	return router.OK(payment), nil
}

func (h *Handler) SendReminder(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	msg, err := h.service.SendReminder(ctx, hospitalID, patientID)
	if err != nil {
		return nil, err
	}
	return router.OK(msg), nil
}

func (h *Handler) Transactions(ctx context.Context, req *router.Request) (*router.Response, error) {
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	txns, err := h.service.Transactions(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return router.OK(txns), nil
}

func (h *Handler) AddTransaction(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	patientID, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	var body model.CreateTransactionRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	t, err := h.service.AddTransaction(ctx, hospitalID, patientID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(t), nil
}
