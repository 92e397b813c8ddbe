package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medboard/hospital-api/pkg/validator"

	authHandler "github.com/medboard/hospital-api/internal/handler/auth"
	documentHandler "github.com/medboard/hospital-api/internal/handler/document"
	patientHandler "github.com/medboard/hospital-api/internal/handler/patient"
	staffroleHandler "github.com/medboard/hospital-api/internal/handler/staffrole"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/router"
	authService "github.com/medboard/hospital-api/internal/service/auth"
	documentService "github.com/medboard/hospital-api/internal/service/document"
	patientService "github.com/medboard/hospital-api/internal/service/patient"
	roleService "github.com/medboard/hospital-api/internal/service/role"
	staffService "github.com/medboard/hospital-api/internal/service/staff"
	"github.com/medboard/hospital-api/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.New()
	st.Seed()
	ov, err := overlay.NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)
	v := validator.New()

	staffSvc := staffService.NewService(st, ov, v)
	patientSvc := patientService.NewService(st, ov, v)
	documentSvc := documentService.NewService(st, v)
	roleSvc := roleService.NewService(st, v)
	authSvc := authService.NewService(staffSvc, authService.Config{Secret: "test"}, v)

	table := router.NewTable()
	table.RegisterAll(
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc, documentSvc),
		staffroleHandler.NewHandler(roleSvc),
		documentHandler.NewHandler(documentSvc),
	)

	srv := New(Config{Port: 0}, table, authSvc, nil, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func TestLoginEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "POST", "/api/v1/auth/login", map[string]string{
		"email":    "admin@medboard.example",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var data struct {
		Token      string `json:"token"`
		Role       string `json:"role"`
		HospitalID int64  `json:"hospitalId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "Administrator", data.Role)
	assert.Equal(t, int64(1), data.HospitalID)
}

func TestLoginFailureMapsTo401(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "POST", "/api/v1/auth/login", map[string]string{
		"email":    "admin@medboard.example",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
}

func TestPatientLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "POST", "/api/v1/hospitals/1/patients", map[string]interface{}{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	var created struct {
		ID  int64  `json:"id"`
		MRN string `json:"mrn"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "MRN001", created.MRN)

	resp, env = do(t, ts, "GET", "/api/v1/hospitals/1/patients/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, ts, "GET", "/api/v1/hospitals/1/patients/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnroutedPathReturns404Envelope(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "GET", "/api/v1/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "no handler for")
}

func TestValidationErrorMapsTo400(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "POST", "/api/v1/hospitals/1/patients", map[string]interface{}{
		"last_name": "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestDeleteReturns204(t *testing.T) {
	ts := newTestServer(t)

	resp, env := do(t, ts, "POST", "/api/v1/hospitals/1/staff-roles", map[string]interface{}{
		"name": "Scratch Role",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = do(t, ts, "DELETE", fmt.Sprintf("/api/v1/hospitals/1/staff-roles/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDocumentDownloadRouteWinsOverGet(t *testing.T) {
	ts := newTestServer(t)

	// seeded admin is staff 1; attach a document and fetch the download
	resp, env := do(t, ts, "POST", "/api/v1/hospitals/1/staff/1/documents", map[string]interface{}{
		"name":      "license.pdf",
		"size":      2048,
		"mime_type": "application/pdf",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var doc struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	require.NotEmpty(t, doc.ID)

	resp, env = do(t, ts, "GET", "/api/v1/hospitals/1/staff/1/documents/"+doc.ID+"/download", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var download struct {
		ContentType string `json:"content_type"`
		Content     []byte `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &download))
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.Contains(t, string(download.Content), "%MEDBOARD-DOC%")
}
