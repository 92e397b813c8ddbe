package patient

import (
	"context"

	"github.com/medboard/hospital-api/internal/handler"
	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/document"
	"github.com/medboard/hospital-api/internal/service/patient"
)

type Handler struct {
	service   *patient.Service
	documents *document.Service
}

func NewHandler(service *patient.Service, documents *document.Service) *Handler {
	return &Handler{service: service, documents: documents}
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients", Handler: h.List},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients", Handler: h.Create},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID", Handler: h.Get},
		{Method: "PUT", Pattern: "/hospitals/:hospitalID/patients/:patientID", Handler: h.Update},

		// health-record documents, owned by the patient
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID/documents", Handler: h.ListDocuments},
		{Method: "POST", Pattern: "/hospitals/:hospitalID/patients/:patientID/documents", Handler: h.AddDocument},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID/documents/:documentID", Handler: h.GetDocument},
		{Method: "DELETE", Pattern: "/hospitals/:hospitalID/patients/:patientID/documents/:documentID", Handler: h.DeleteDocument},
		{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID/documents/:documentID/download", Handler: h.DownloadDocument},
	}
}

func (h *Handler) List(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	patients, err := h.service.List(ctx, hospitalID, handler.ListOptionsFromQuery(req.Query))
	if err != nil {
		return nil, err
	}
	return router.OK(patients), nil
}

func (h *Handler) Create(ctx context.Context, req *router.Request) (*router.Response, error) {
	hospitalID, err := req.ParamInt64("hospitalID")
	if err != nil {
		return nil, err
	}
	var body model.CreatePatientRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	p, err := h.service.Create(ctx, hospitalID, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(p), nil
}

func (h *Handler) Get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
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
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	var body model.UpdatePatientRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	detail, err := h.service.Update(ctx, id, &body)
	if err != nil {
		return nil, err
	}
	return router.OK(detail), nil
}

func (h *Handler) ListDocuments(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	docs, err := h.documents.List(ctx, model.DocumentOwnerPatient, id)
	if err != nil {
		return nil, err
	}
	return router.OK(docs), nil
}

func (h *Handler) AddDocument(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	var body model.CreateDocumentRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}
	doc, err := h.documents.Create(ctx, model.DocumentOwnerPatient, id, &body)
	if err != nil {
		return nil, err
	}
	return router.Created(doc), nil
}

func (h *Handler) GetDocument(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	doc, err := h.documents.Get(ctx, model.DocumentOwnerPatient, id, req.Param("documentID"))
	if err != nil {
		return nil, err
	}
	return router.OK(doc), nil
}

func (h *Handler) DeleteDocument(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	if err := h.documents.Delete(ctx, model.DocumentOwnerPatient, id, req.Param("documentID")); err != nil {
		return nil, err
	}
	return router.NoContent(), nil
}

func (h *Handler) DownloadDocument(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := req.ParamInt64("patientID")
	if err != nil {
		return nil, err
	}
	dl, err := h.documents.Download(ctx, model.DocumentOwnerPatient, id, req.Param("documentID"))
	if err != nil {
		return nil, err
	}
	return router.OK(dl), nil
}
