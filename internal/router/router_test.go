package router

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
)

func named(name string) HandlerFunc {
	return func(ctx context.Context, req *Request) (*Response, error) {
		return OK(name), nil
	}
}

func TestLiteralSuffixOutranksParam(t *testing.T) {
	table := NewTable()
	// registered in the unfavorable order on purpose
	table.Register(
		Route{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents/:documentID", Handler: named("get")},
		Route{Method: "GET", Pattern: "/hospitals/:hospitalID/staff/:staffID/documents/:documentID/download", Handler: named("download")},
	)

	m, ok := table.Match("GET", "/hospitals/1/staff/5/documents/doc-2/download")
	require.True(t, ok)
	assert.Equal(t, "/hospitals/:hospitalID/staff/:staffID/documents/:documentID/download", m.Pattern)
	assert.Equal(t, "1", m.Params["hospitalID"])
	assert.Equal(t, "5", m.Params["staffID"])
	assert.Equal(t, "doc-2", m.Params["documentID"])

	m, ok = table.Match("GET", "/hospitals/1/staff/5/documents/doc-2")
	require.True(t, ok)
	assert.Equal(t, "/hospitals/:hospitalID/staff/:staffID/documents/:documentID", m.Pattern)
}

func TestMoreLiteralsWinAtEqualLength(t *testing.T) {
	table := NewTable()
	table.Register(
		Route{Method: "GET", Pattern: "/hospitals/:hospitalID/:section", Handler: named("generic")},
		Route{Method: "GET", Pattern: "/hospitals/:hospitalID/payroll", Handler: named("payroll")},
	)

	m, ok := table.Match("GET", "/hospitals/1/payroll")
	require.True(t, ok)
	assert.Equal(t, "/hospitals/:hospitalID/payroll", m.Pattern)

	m, ok = table.Match("GET", "/hospitals/1/billings")
	require.True(t, ok)
	assert.Equal(t, "/hospitals/:hospitalID/:section", m.Pattern)
}

func TestEarlierLiteralBreaksTies(t *testing.T) {
	table := NewTable()
	// both have 1 literal + 1 param; the literal-first pattern ranks higher
	table.Register(
		Route{Method: "GET", Pattern: "/:entity/summary", Handler: named("suffix")},
		Route{Method: "GET", Pattern: "/reports/:name", Handler: named("prefix")},
	)

	m, ok := table.Match("GET", "/reports/summary")
	require.True(t, ok)
	assert.Equal(t, "/reports/:name", m.Pattern)
}

func TestMethodIsPartOfTheMatch(t *testing.T) {
	table := NewTable()
	table.Register(
		Route{Method: "GET", Pattern: "/hospitals/:hospitalID", Handler: named("get")},
		Route{Method: "PUT", Pattern: "/hospitals/:hospitalID", Handler: named("put")},
	)

	_, ok := table.Match("DELETE", "/hospitals/1")
	assert.False(t, ok)
}

func TestDispatchUnroutedIsAValueNotAPanic(t *testing.T) {
	table := NewTable()
	table.Register(Route{Method: "GET", Pattern: "/hospitals/:hospitalID", Handler: named("get")})

	_, err := table.Dispatch(context.Background(), &Request{Method: "GET", Path: "/nonsense/route"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnrouted))
}

func TestDispatchBindsParams(t *testing.T) {
	table := NewTable()
	table.Register(Route{Method: "GET", Pattern: "/hospitals/:hospitalID/patients/:patientID",
		Handler: func(ctx context.Context, req *Request) (*Response, error) {
			id, err := req.ParamInt64("patientID")
			if err != nil {
				return nil, err
			}
			return OK(id), nil
		}})

	resp, err := table.Dispatch(context.Background(), &Request{Method: "GET", Path: "/hospitals/1/patients/42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.Data)
}

func TestDispatchTrailingSlashNormalized(t *testing.T) {
	table := NewTable()
	table.Register(Route{Method: "GET", Pattern: "/hospitals/:hospitalID/patients", Handler: named("list")})

	_, ok := table.Match("GET", "/hospitals/1/patients/")
	assert.True(t, ok)
}

func TestSimulatedLatencyHonorsContext(t *testing.T) {
	table := NewTable(WithLatency(LatencyConfig{Min: time.Second, Max: 2 * time.Second}))
	table.Register(Route{Method: "GET", Pattern: "/slow", Handler: named("slow")})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := table.Dispatch(ctx, &Request{Method: "GET", Path: "/slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestBindRejectsEmptyAndMalformedBodies(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	err := (&Request{}).Bind(&v)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	err = (&Request{Body: []byte(`{not json`)}).Bind(&v)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	err = (&Request{Body: []byte(`{"name":"ok"}`)}).Bind(&v)
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Name)
}
