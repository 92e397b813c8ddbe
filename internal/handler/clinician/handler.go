package clinician

import (
	"context"

	"github.com/medboard/hospital-api/internal/handler"
	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/staff"
	apperrors "github.com/medboard/hospital-api/pkg/errors"
)

type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/clinicians", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/clinicians", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/clinicians/:clinicianID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/clinicians/:clinicianID", Handler: h.Update},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/clinicians/:clinicianID/profile-picture", Handler: h.UploadProfilePicture},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	members, err := h.service.List(ctx, hospitalID, handler.ListOptionsFromQuery(req.Query))
	if err != nil {
		return nil, err
	}
	return router.OK(members), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreateStaffRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	detail, err := h.service.Create(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(detail), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("clinicianID")
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
	id, err := req.ParamInt64("clinicianID")
	if err != nil {
		return nil, err
	}
	var body model.UpdateStaffRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	detail, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}

func (h *Handler) UploadProfilePicture(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("clinicianID")
	if err != nil {
		return nil, err
	}
	var body struct {
		FileName string `json:"file_name"`
	}
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	if body.FileName == "" {
		return nil, apperrors.InvalidInput("file_name required", nil)
	}
	detail, err := h.service.SetProfilePicture(ctx, id, body.FileName)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}
