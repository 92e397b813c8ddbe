package hospital

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/hospital"
)

type Handler struct {
	service *hospital.Service
}

func NewHandler(service *hospital.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID", Handler: h.Update},
	}
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	detail, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}

func (h *Handler) Update(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.UpdateHospitalRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	detail, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}
