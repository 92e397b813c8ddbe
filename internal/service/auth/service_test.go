package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/service/staff"
	"github.com/medboard/hospital-api/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New()
	st.Seed()
	ov, err := overlay.NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)
	v := validator.New()
	staffSvc := staff.NewService(st, ov, v)
	return NewService(staffSvc, Config{Secret: "test-secret", ExpiryHours: 1}, v)
}

func TestLoginWithSeededAdmin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@medboard.example",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Administrator", resp.Role)
	assert.Equal(t, int64(1), resp.HospitalID)

	claims, ok := svc.Session(resp.Token)
	require.True(t, ok)
	assert.Equal(t, "admin@medboard.example", claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &model.LoginRequest{Email: "admin@medboard.example", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@medboard.example", Password: "admin123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestSessionUnknownToken(t *testing.T) {
	svc := newTestService(t)
	_, ok := svc.Session("bogus")
	assert.False(t, ok)
}
