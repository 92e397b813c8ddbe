package document

import (
	"context"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/document"
)

// Handler serves staff-owned documents. Patient health-record documents
// are routed through the patient handler against the same service.
type Handler struct {
	service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents/:documentID", Handler: h.Get},
		{Method: "DELETE", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents/:documentID", Handler: h.Delete},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents/:documentID/download", Handler: h.Download},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	docs, err := h.service.List(ctx, model.DocumentOwnerStaff, staffID)
	if err != nil {
		return nil, err
	}
	return router.OK(docs), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	var body model.CreateDocumentRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	doc, err := h.service.Create(ctx, model.DocumentOwnerStaff, staffID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(doc), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	doc, err := h.service.Get(ctx, model.DocumentOwnerStaff, staffID, req.Param("documentID"))
	if err != nil {
		return nil, err
	}
	return router.OK(doc), nil
}

func (h *Handler) Delete(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	if err := h.service.Delete(ctx, model.DocumentOwnerStaff, staffID, req.Param("documentID")); err != nil {
		return nil, err
	}
	return router.NoContent(), nil
}

func (h *Handler) Download(ctx context.Context, req *router.Request) (*router.Response, error) {
	staffID, err := req.ParamInt64("staffID")
	if err != nil {
		return nil, err
	}
	payload, err := h.service.Download(ctx, model.DocumentOwnerStaff, staffID, req.Param("documentID"))
	if err != nil {
		return nil, err
	}
	return router.OK(payload), nil
}
