package draft

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/draft"
)

type Handler struct {
	service *draft.Service
}

func NewHandler(service *draft.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/update-draft", Handler: h.Load},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/staff/:staffID/update-draft", Handler: h.Save},
		{Method: "DELETE", Pattern: "/hospitals/:hospitalID/staff/:staffID/update-draft", Handler: h.Clear},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/staff/:staffID/update-complete", Handler: h.Finalize},
	}
}

// Load returns the current draft, or {"draft": null} when none exists so
// the client can distinguish "nothing saved" from an error.
func (h *Handler) Load(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	d, err := h.service.Load(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return router.OK(map[string]*model.StaffUpdateDraft{"draft": d}), nil
}

func (h *Handler) Save(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	var body model.SaveDraftRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	d, err := h.service.Save(ctx, staffID, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(d), nil
}

func (h *Handler) Clear(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	if err := h.service.Clear(ctx, staffID); err != nil {
		return nil, err
	}
	return router.NoContent(), nil
}

func (h *Handler) Finalize(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	var body model.FinalizeDraftRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	detail, err := h.service.Finalize(ctx, staffID, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}
