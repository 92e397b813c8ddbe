package template

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/template"
)

type Handler struct {
	service *template.Service
}

func NewHandler(service *template.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/templates", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/templates", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/templates/:templateID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/templates/:templateID", Handler: h.Update},
		{Method: "DELETE", Pattern: "/hospitals/:hospitalID/templates/:templateID", Handler: h.Delete},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	templates, err := h.service.List(ctx, hospitalID, req.Query.Get("channel"))
	if err != nil {
		return nil, err
	}
	return router.OK(templates), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreateTemplateRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	t, err := h.service.Create(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(t), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("templateID")
	if err != nil {
		return nil, err
	}
	t, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return router.OK(t), nil
}

func (h *Handler) Update(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("templateID")
	if err != nil {
		return nil, err
	}
	var body model.UpdateTemplateRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	t, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(t), nil
}

func (h *Handler) Delete(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("templateID")
	if err != nil {
		return nil, err
	}
	if err := h.service.Delete(ctx, id); err != nil {
		return nil, err
	}
	return router.NoContent(), nil
}
