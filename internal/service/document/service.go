package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/store"
)

type Service struct {
	store    *store.Store
	validate *validator.Validator
}

func NewService(st *store.Store, v *validator.Validator) *Service {
	return &Service{store: st, validate: v}
}

func (s *Service) ownerExists(owner model.DocumentOwner, ownerID int64) bool {
	switch owner {
	case model.DocumentOwnerStaff:
		_, ok := s.store.Staff.Get(ownerID)
		return ok
	case model.DocumentOwnerPatient:
		_, ok := s.store.Patients.Get(ownerID)
		return ok
	}
	return false
}

func (s *Service) List(ctx context.Context, owner model.DocumentOwner, ownerID int64) ([]*model.Document, error) {
	if !s.ownerExists(owner, ownerID) {
		return nil, apperrors.NotFound(string(owner), nil)
	}
	return s.store.Documents.ListByOwner(owner, ownerID), nil
}

func (s *Service) Create(ctx context.Context, owner model.DocumentOwner, ownerID int64, req *model.CreateDocumentRequest) (*model.Document, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if !strings.Contains(req.MIMEType, "/") {
		return nil, apperrors.InvalidInput("malformed mime type", nil)
	}
	if !s.ownerExists(owner, ownerID) {
		return nil, apperrors.NotFound(string(owner), nil)
	}

	doc := &model.Document{
		OwnerType:   owner,
		OwnerID:     ownerID,
		Name:        req.Name,
		Size:        req.Size,
		MIMEType:    req.MIMEType,
		Category:    req.Category,
		Description: req.Description,
		UploadedAt:  time.Now(),
	}
	s.store.Documents.Create(doc)
	return doc, nil
}

func (s *Service) Get(ctx context.Context, owner model.DocumentOwner, ownerID int64, id string) (*model.Document, error) {
	doc, ok := s.store.Documents.Get(id)
	if !ok || doc.OwnerType != owner || doc.OwnerID != ownerID {
		return nil, apperrors.NotFound("document", nil)
	}
	return doc, nil
}

// Delete is immediate and irreversible within the store.
func (s *Service) Delete(ctx context.Context, owner model.DocumentOwner, ownerID int64, id string) error {
	if _, err := s.Get(ctx, owner, ownerID, id); err != nil {
		return err
	}
	s.store.Documents.Delete(id)
	return nil
}

// Download produces the opaque formatted payload for a document. The
// actual file-format generation is a mock formatting concern; the payload
// carries the metadata in a stable shape the UI treats as a blob.
func (s *Service) Download(ctx context.Context, owner model.DocumentOwner, ownerID int64, id string) (*model.DocumentDownload, error) {
	doc, err := s.Get(ctx, owner, ownerID, id)
	if err != nil {
		return nil, err
	}
	content := fmt.Sprintf("%%MEDBOARD-DOC%%\nid: %s\nname: %s\ncategory: %s\nsize: %d\nuploaded: %s\n",
		doc.ID, doc.Name, doc.Category, doc.Size, doc.UploadedAt.Format(time.RFC3339))
	return &model.DocumentDownload{
		Document:    *doc,
		ContentType: doc.MIMEType,
		Content:     []byte(content),
	}, nil
}
