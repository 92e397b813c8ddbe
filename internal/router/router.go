package router

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medboard/hospital-api/pkg/errors"
)

// Request is a logical request dispatched through the route table.
type Request struct {
	Method string
	Path   string
	Params map[string]string
	Query  url.Values
	Body   []byte
}

// Param returns the named path parameter, extracted positionally during
// matching.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// ParamInt64 parses the named path parameter as an int64 ID.
func (r *Request) ParamInt64(name string) (int64, error) {
	v, err := strconv.ParseInt(r.Params[name], 10, 64)
	if err != nil {
		return 0, errors.InvalidInput("invalid "+name, err)
	}
	return v, nil
}

// Bind decodes the JSON body into v.
func (r *Request) Bind(v interface{}) error {
	if len(r.Body) == 0 {
		return errors.InvalidInput("request body required", nil)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.InvalidInput("malformed request body", err)
	}
	return nil
}

// Response is a logical response.
type Response struct {
	Status int
	Data   interface{}
}

func OK(data interface{}) *Response      { return &Response{Status: 200, Data: data} }
func Created(data interface{}) *Response { return &Response{Status: 201, Data: data} }
func NoContent() *Response               { return &Response{Status: 204} }

// HandlerFunc handles one logical request.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Route pairs a method and a path pattern with a handler. Patterns are
// /-delimited; segments starting with ':' match any value at that
// position and bind it as a parameter.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// Registrar is implemented by resource handlers that contribute routes.
type Registrar interface {
	Routes() []Route
}

type segment struct {
	literal string
	param   string
}

type compiledRoute struct {
	route    Route
	segments []segment
	literals int
	score    uint64
	order    int
}

// Match is the result of resolving a (method, path) pair.
type Match struct {
	Pattern string
	Params  map[string]string
	Handler HandlerFunc
}

// LatencyConfig bounds the simulated per-operation latency standing in
// for network I/O. Zero disables it.
type LatencyConfig struct {
	Min time.Duration
	Max time.Duration
}

// Table is the declarative route table. Routes are evaluated in
// specificity order: more segments first, then more literal segments,
// then position-weighted literalness so fixed prefixes and fixed action
// suffixes outrank generic :id routes. Getting this ordering wrong
// silently misroutes action paths like /documents/:id/download onto
// /documents/:id, so the ordering itself is under test.
type Table struct {
	mu      sync.RWMutex
	routes  []compiledRoute
	latency LatencyConfig
	logger  zerolog.Logger
}

type Option func(*Table)

func WithLatency(cfg LatencyConfig) Option {
	return func(t *Table) { t.latency = cfg }
}

func WithLogger(l zerolog.Logger) Option {
	return func(t *Table) { t.logger = l }
}

func NewTable(opts ...Option) *Table {
	t := &Table{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds routes and re-ranks the table.
func (t *Table) Register(routes ...Route) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range routes {
		cr := compile(r)
		cr.order = len(t.routes)
		t.routes = append(t.routes, cr)
	}

	sort.SliceStable(t.routes, func(i, j int) bool {
		a, b := t.routes[i], t.routes[j]
		if len(a.segments) != len(b.segments) {
			return len(a.segments) > len(b.segments)
		}
		if a.literals != b.literals {
			return a.literals > b.literals
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.order < b.order
	})
}

// RegisterAll registers the routes of each registrar.
func (t *Table) RegisterAll(registrars ...Registrar) {
	for _, reg := range registrars {
		t.Register(reg.Routes()...)
	}
}

func compile(r Route) compiledRoute {
	parts := splitPath(r.Pattern)
	cr := compiledRoute{route: r, segments: make([]segment, len(parts))}
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			cr.segments[i] = segment{param: p[1:]}
			continue
		}
		cr.segments[i] = segment{literal: p}
		cr.literals++
		// left-weighted bit: earlier literal segments dominate, so the
		// longest fixed prefix ranks first among equally literal routes
		cr.score |= 1 << (63 - i)
	}
	return cr
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Match resolves a (method, path) pair against the ranked table. The
// first full match wins. A miss is reported through the boolean, never a
// panic or error.
func (t *Table) Match(method, path string) (*Match, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	parts := splitPath(path)
	for _, cr := range t.routes {
		if cr.route.Method != method || len(cr.segments) != len(parts) {
			continue
		}
		params, ok := matchSegments(cr.segments, parts)
		if !ok {
			continue
		}
		return &Match{
			Pattern: cr.route.Pattern,
			Params:  params,
			Handler: cr.route.Handler,
		}, true
	}
	return nil, false
}

func matchSegments(segs []segment, parts []string) (map[string]string, bool) {
	var params map[string]string
	for i, seg := range segs {
		if seg.param != "" {
			if params == nil {
				params = make(map[string]string, 4)
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// Dispatch resolves and runs the handler for req. An unmatched request
// returns an Unrouted error value the caller must check; handler errors
// pass through as typed failures.
func (t *Table) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	m, ok := t.Match(req.Method, req.Path)
	if !ok {
		t.logger.Debug().Str("method", req.Method).Str("path", req.Path).Msg("unrouted request")
		return nil, errors.Unrouted(req.Method, req.Path)
	}
	req.Params = m.Params

	if err := t.simulateLatency(ctx); err != nil {
		return nil, err
	}

	resp, err := m.Handler(ctx, req)
	if err != nil {
		t.logger.Debug().Err(err).Str("method", req.Method).Str("pattern", m.Pattern).Msg("handler error")
		return nil, err
	}
	return resp, nil
}

func (t *Table) simulateLatency(ctx context.Context) error {
	if t.latency.Max <= 0 {
		return nil
	}
	d := t.latency.Min
	if span := t.latency.Max - t.latency.Min; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
