package template

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New()
	st.Seed()
	return NewService(st, validator.New())
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &model.CreateTemplateRequest{
		Name:    "Welcome",
		Channel: model.TemplateChannelEmail,
		Subject: "Welcome to {{hospital}}",
		Content: "Hello {{name}}",
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	content := "Hello there, {{name}}"
	updated, err := svc.Update(ctx, created.ID, &model.UpdateTemplateRequest{Content: &content})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestFindByNameIsCaseInsensitiveAndChannelScoped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tpl, err := svc.FindByName(ctx, 1, "payment reminder", model.TemplateChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, "Payment Reminder", tpl.Name)

	_, err = svc.FindByName(ctx, 1, "payment reminder", model.TemplateChannelVoice)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListByChannel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	email, err := svc.List(ctx, 1, "email")
	require.NoError(t, err)
	require.Len(t, email, 1)
	assert.Equal(t, "Payment Reminder", email[0].Name)

	all, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	out := Render("Invoice {{invoice}} for {{amount}} due {{due}}", map[string]string{
		"invoice": "INV-7",
		"amount":  "120.50",
		"due":     "2026-09-30",
	})
	assert.Equal(t, "Invoice INV-7 for 120.50 due 2026-09-30", out)

	// unknown placeholders stay verbatim
	assert.Equal(t, "Hi {{name}}", Render("Hi {{name}}", nil))
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &model.CreateTemplateRequest{
		Name:    "Scratch",
		Channel: model.TemplateChannelSMS,
		Content: "x",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, apperrors.Is(svc.Delete(ctx, created.ID), apperrors.ErrNotFound))
}
