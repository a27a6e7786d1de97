package apikit

import (
	"fmt"
	"maps"
	"net/http"
)

// EmptyModel is the name of the no-op model every service pre-registers.
const EmptyModel = "empty"

// MockResponse is a tagged variant describing what a mocked endpoint
// resolves to: either a literal envelope or a function computed from the
// validated model. The zero value means "not configured" and falls back to
// a generic envelope at dispatch time.
type MockResponse struct {
	literal *Response
	fn      func(m *Model) Response
}

// MockLiteral wraps a fixed envelope as a mock response.
func MockLiteral(r Response) MockResponse {
	return MockResponse{literal: &r}
}

// MockFunc wraps a function computed from the model at dispatch time.
func MockFunc(fn func(m *Model) Response) MockResponse {
	return MockResponse{fn: fn}
}

// resolve picks the configured variant, falling back to def when the mock
// was never configured.
func (mr MockResponse) resolve(m *Model, def Response) Response {
	switch {
	case mr.fn != nil:
		return mr.fn(m)
	case mr.literal != nil:
		return *mr.literal
	default:
		return def
	}
}

// EndpointConfig is the caller-facing declaration of one operation.
// Zero values fall back to: Method POST, Model "empty".
type EndpointConfig struct {
	Name         string
	Path         string
	Method       string
	Model        string
	RequiresAuth bool
	Headers      map[string]string
	MockSuccess  MockResponse
	MockFailure  MockResponse
}

// Endpoint is the stored, immutable descriptor built from an EndpointConfig.
type Endpoint struct {
	Name         string
	Path         string
	Method       string
	Model        string
	RequiresAuth bool
	Headers      map[string]string
	MockSuccess  MockResponse
	MockFailure  MockResponse
}

// mergeHeaders copies entries from src into dst for keys dst does not
// already have. dst keys always win.
func mergeHeaders(dst, src map[string]string) map[string]string {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

// Service groups endpoints and model factories under a base path. Services
// are assembled during setup and treated as read-only during calls.
type Service struct {
	name      string
	basePath  string
	endpoints map[string]*Endpoint
	models    map[string]*ModelFactory
	headers   map[string]string
}

// NewService creates a service with the "empty" model pre-registered, so
// endpoints that carry no payload need no schema.
func NewService(name, basePath string) *Service {
	return &Service{
		name:      name,
		basePath:  basePath,
		endpoints: make(map[string]*Endpoint),
		models:    map[string]*ModelFactory{EmptyModel: EmptyFactory()},
		headers:   make(map[string]string),
	}
}

// Name returns the service name used in "service.endpoint" call names.
func (s *Service) Name() string { return s.name }

// BasePath returns the path prefix shared by all endpoints of the service.
func (s *Service) BasePath() string { return s.basePath }

// AddModel registers a model factory under a unique name.
func (s *Service) AddModel(name string, f *ModelFactory) error {
	if _, ok := s.models[name]; ok {
		return fmt.Errorf("%w: %q in service %q", ErrModelExists, name, s.name)
	}
	s.models[name] = f
	return nil
}

// Model returns the factory registered under name.
func (s *Service) Model(name string) (*ModelFactory, bool) {
	f, ok := s.models[name]
	return f, ok
}

// AddEndpoint builds and stores an endpoint descriptor. The endpoint's model
// must already be registered on this service; this guarantees every endpoint
// has a validated request shape before it can ever be called.
func (s *Service) AddEndpoint(cfg EndpointConfig) error {
	if _, ok := s.endpoints[cfg.Name]; ok {
		return fmt.Errorf("%w: %q in service %q", ErrEndpointExists, cfg.Name, s.name)
	}

	method := cfg.Method
	if method == "" {
		method = http.MethodPost
	}
	model := cfg.Model
	if model == "" {
		model = EmptyModel
	}
	if _, ok := s.models[model]; !ok {
		return fmt.Errorf("%w: %q required by endpoint %q", ErrModelNotFound, model, cfg.Name)
	}

	headers := make(map[string]string, len(cfg.Headers))
	maps.Copy(headers, cfg.Headers)

	s.endpoints[cfg.Name] = &Endpoint{
		Name:         cfg.Name,
		Path:         cfg.Path,
		Method:       method,
		Model:        model,
		RequiresAuth: cfg.RequiresAuth,
		Headers:      headers,
		MockSuccess:  cfg.MockSuccess,
		MockFailure:  cfg.MockFailure,
	}
	return nil
}

// Endpoint returns a copy of the named descriptor with service-level headers
// merged in. Endpoint-level headers take precedence; the stored descriptor is
// never mutated by the merge.
func (s *Service) Endpoint(name string) (*Endpoint, bool) {
	ep, ok := s.endpoints[name]
	if !ok {
		return nil, false
	}

	merged := *ep
	merged.Headers = make(map[string]string, len(ep.Headers)+len(s.headers))
	maps.Copy(merged.Headers, ep.Headers)
	mergeHeaders(merged.Headers, s.headers)
	return &merged, true
}

// AddHeader sets a service-level header applied to every endpoint that does
// not override the key itself.
func (s *Service) AddHeader(key, value string) {
	s.headers[key] = value
}

// Headers returns a copy of the service-level headers.
func (s *Service) Headers() map[string]string {
	out := make(map[string]string, len(s.headers))
	maps.Copy(out, s.headers)
	return out
}
