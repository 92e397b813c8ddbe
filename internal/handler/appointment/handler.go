package appointment

import (
	"context"

	"github.com/medboard/hospital-api/internal/handler"
	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/appointments", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/appointments", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/appointments/:appointmentID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/appointments/:appointmentID", Handler: h.Update},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	appts, err := h.service.List(ctx, hospitalID, handler.ListOptionsFromQuery(req.Query))
	if err != nil {
		return nil, err
	}
	return router.OK(appts), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreateAppointmentRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	a, err := h.service.Create(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(a), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("appointmentID")
	if err != nil {
		return nil, err
	}
	a, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return router.OK(a), nil
}

func (h *Handler) Update(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("appointmentID")
	if err != nil {
		return nil, err
	}
	var body model.UpdateAppointmentRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	a, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(a), nil
}
