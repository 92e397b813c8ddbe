package notification

import (
	"context"

	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/notification"
)

type Handler struct {
	service *notification.Service
}

func NewHandler(service *notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/notifications", Handler: h.List},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/outbound-queue", Handler: h.OutboundQueue},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	notifications, err := h.service.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return router.OK(notifications), nil
}

func (h *Handler) OutboundQueue(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	queue, err := h.service.OutboundQueue(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return router.OK(queue), nil
}
