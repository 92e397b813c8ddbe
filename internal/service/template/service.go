package template

import (
	"context"
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

func (s *Service) List(ctx context.Context, hospitalID int64, channel string) ([]*model.Template, error) {
	return s.store.Templates.List(func(t *model.Template) bool {
		if t.HospitalID != hospitalID {
			return false
		}
		if channel != "" && string(t.Channel) != channel {
			return false
		}
		return true
	}), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Template, error) {
	t, ok := s.store.Templates.Get(id)
	if !ok {
		return nil, apperrors.NotFound("template", nil)
	}
	return t, nil
}

// FindByName resolves a template by name and channel, used by the
// reminder flow.
func (s *Service) FindByName(ctx context.Context, hospitalID int64, name string, channel model.TemplateChannel) (*model.Template, error) {
	matches := s.store.Templates.List(func(t *model.Template) bool {
		return t.HospitalID == hospitalID && t.Channel == channel && strings.EqualFold(t.Name, name)
	})
	if len(matches) == 0 {
		return nil, apperrors.NotFound("template", nil)
	}
	return matches[0], nil
}

func (s *Service) Create(ctx context.Context, hospitalID int64, req *model.CreateTemplateRequest) (*model.Template, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &model.Template{
		HospitalID: hospitalID,
		Name:       req.Name,
		Channel:    req.Channel,
		Subject:    req.Subject,
		Content:    req.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.store.Templates.Create(t, nil)
	return t, nil
}

// Update merges the request and refreshes UpdatedAt on every mutation.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateTemplateRequest) (*model.Template, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	t, ok := s.store.Templates.Update(id, func(t *model.Template) {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Channel != nil {
			t.Channel = *req.Channel
		}
		if req.Subject != nil {
			t.Subject = *req.Subject
		}
		if req.Content != nil {
			t.Content = *req.Content
		}
		t.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apperrors.NotFound("template", nil)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if !s.store.Templates.Delete(id) {
		return apperrors.NotFound("template", nil)
	}
	return nil
}

// Render substitutes {{placeholder}} values into a template body.
func Render(content string, vars map[string]string) string {
	out := content
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out
}
