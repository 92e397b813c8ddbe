package staffrole

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/role"
)

type Handler struct {
	service *role.Service
}

func NewHandler(service *role.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff-roles", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/staff-roles", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff-roles/:roleID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/staff-roles/:roleID", Handler: h.Update},
		{Method: "DELETE", Pattern: "/hospitals/:hospitalID/staff-roles/:roleID", Handler: h.Delete},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	roles, err := h.service.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return router.OK(roles), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreateStaffRoleRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	r, err := h.service.Create(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(r), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("roleID")
	if err != nil {
		return nil, err
	}
	r, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return router.OK(r), nil
}

func (h *Handler) Update(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("roleID")
	if err != nil {
		return nil, err
	}
	var body model.UpdateStaffRoleRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	r, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(r), nil
}

func (h *Handler) Delete(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("roleID")
	if err != nil {
		return nil, err
	}
	if err := h.service.Delete(ctx, id); err != nil {
		return nil, err
	}
	return router.NoContent(), nil
}
