package auth

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "POST", Pattern: "/auth/login", Handler: h.Login},
	}
}

func (h *Handler) Login(ctx context.Context, req *router.Request) (*router.Response, error) {
	var body model.LoginRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	resp, err := h.service.Login(ctx, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(resp), nil
}
