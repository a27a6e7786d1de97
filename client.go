package apikit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// callSeparator splits "service.endpoint" call names.
const callSeparator = "."

// Payload is the argument to Call: either raw field data to be validated
// against the endpoint's model, or an already validated *Model. The
// interface is sealed so the dispatcher never has to guess from shape.
type Payload interface {
	payload()
}

// RawData is caller-supplied field data that the dispatcher validates
// against the endpoint's model before dispatching.
type RawData map[string]any

func (RawData) payload() {}

// callOptions carries per-call behavior toggles.
type callOptions struct {
	mockSuccess bool
}

// CallOption is a functional option for a single Call invocation.
type CallOption func(*callOptions)

// WithMockSuccess selects the success branch of a mocked endpoint. Without
// it, mock-mode dispatch resolves the failure branch: seeing a happy-path
// mock requires explicit opt-in.
func WithMockSuccess() CallOption {
	return func(o *callOptions) { o.mockSuccess = true }
}

// Client resolves "service.endpoint" names to validated, dispatched calls.
// Rules, services and headers are registered during setup; calls only read
// them, so concurrent Call invocations are safe once setup is done.
type Client struct {
	host          string
	mock          bool
	tokenProvider TokenProvider
	services      map[string]*Service
	rules         map[string]RuleFunc
	headers       map[string]string
	transport     *Transport
	log           *slog.Logger
}

// New creates a client with the built-in validation rules registered.
// A host is required unless the client runs in mock mode.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := defaultOptions(cfg)
	for _, opt := range opts {
		opt(o)
	}

	if cfg.Host == "" && !cfg.Mock {
		return nil, ErrMissingHost
	}

	return &Client{
		host:          strings.TrimSuffix(cfg.Host, "/"),
		mock:          cfg.Mock,
		tokenProvider: o.tokenProvider,
		services:      make(map[string]*Service),
		rules:         builtinRules(),
		headers:       o.headers,
		transport:     newTransport(o.httpClient, o.userAgent),
		log:           o.log,
	}, nil
}

// RegisterRule inserts or overwrites a validation rule by name. Overwriting
// is allowed (it is how callers replace built-ins) but logged at warning
// level since it usually signals a name collision.
func (c *Client) RegisterRule(name string, fn RuleFunc) {
	if _, ok := c.rules[name]; ok {
		c.log.Warn("validation rule overwritten", slog.String("rule", name))
	}
	c.rules[name] = fn
}

// Rule returns the named validation rule. An unregistered name is a
// misconfigured schema, reported as an error rather than an envelope.
func (c *Client) Rule(name string) (RuleFunc, error) {
	fn, ok := c.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	return fn, nil
}

// Rules lists all registered rule names, in no particular order.
func (c *Client) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for name := range c.rules {
		names = append(names, name)
	}
	return names
}

// AddService stores a service by name. Re-adding under an existing name
// replaces the previous service.
func (c *Client) AddService(s *Service) error {
	if s == nil || s.Name() == "" {
		return ErrServiceUnnamed
	}
	c.services[s.Name()] = s
	return nil
}

// Service returns a registered service by name.
func (c *Client) Service(name string) (*Service, bool) {
	s, ok := c.services[name]
	return s, ok
}

// AddHeader sets a global header applied to every call that does not
// override the key at service or endpoint level.
func (c *Client) AddHeader(key, value string) {
	c.headers[key] = value
}

// resolve maps a "service.endpoint" name to its descriptors. Misses are
// routine runtime conditions (typos, stale clients), so they come back as
// failing envelopes rather than errors.
func (c *Client) resolve(name string) (*Service, *Endpoint, *Response) {
	svcName, epName, found := strings.Cut(name, callSeparator)
	if !found || svcName == "" || epName == "" {
		resp := ErrorResponse(fmt.Sprintf("invalid call name %q: want \"service.endpoint\"", name))
		return nil, nil, &resp
	}
	svc, ok := c.services[svcName]
	if !ok {
		resp := ErrorResponse(fmt.Sprintf("unknown service %q", svcName))
		return nil, nil, &resp
	}
	ep, ok := svc.Endpoint(epName)
	if !ok {
		resp := ErrorResponse(fmt.Sprintf("unknown endpoint %q in service %q", epName, svcName))
		return nil, nil, &resp
	}
	return svc, ep, nil
}

// Call resolves the named endpoint, validates the payload against its model
// and dispatches the request. The result is always an envelope: resolution
// misses, invalid input, auth failures and transport errors all come back as
// failing envelopes, never as panics or raw errors.
func (c *Client) Call(ctx context.Context, name string, payload Payload, opts ...CallOption) Response {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	svc, ep, fail := c.resolve(name)
	if fail != nil {
		return *fail
	}

	// Endpoint headers already carry the service-level merge; globals fill
	// whatever keys are still absent.
	headers := maps.Clone(ep.Headers)
	mergeHeaders(headers, c.headers)

	var m *Model
	switch p := payload.(type) {
	case *Model:
		if p == nil {
			return ErrorResponse("invalid data")
		}
		m = p
	case RawData:
		factory, ok := svc.Model(ep.Model)
		if !ok {
			return ErrorResponse("invalid data")
		}
		m = factory.New(p, c)
	default:
		factory, ok := svc.Model(ep.Model)
		if !ok {
			return ErrorResponse("invalid data")
		}
		m = factory.New(nil, c)
	}

	if !m.IsValid() {
		return m.Result()
	}

	if c.mock {
		return c.dispatchMock(svc, ep, m, options.mockSuccess)
	}
	return c.dispatch(ctx, svc, ep, m, headers)
}

// CreateRequest resolves the named endpoint and constructs an already
// validated model from the raw data, letting the caller inspect IsValid and
// Result before deciding to dispatch. Resolution misses and an unresolvable
// model factory are both reported as errors.
func (c *Client) CreateRequest(name string, data RawData) (*Model, error) {
	svcName, epName, found := strings.Cut(name, callSeparator)
	if !found || svcName == "" || epName == "" {
		return nil, fmt.Errorf("%w: invalid call name %q", ErrServiceNotFound, name)
	}
	svc, ok := c.services[svcName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, svcName)
	}
	ep, ok := svc.Endpoint(epName)
	if !ok {
		return nil, fmt.Errorf("%w: %q in service %q", ErrEndpointNotFound, epName, svcName)
	}
	factory, ok := svc.Model(ep.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %q required by endpoint %q", ErrModelNotFound, ep.Model, epName)
	}
	return factory.New(data, c), nil
}

// dispatchMock resolves the configured mock for the chosen branch. The
// failure branch is the default; WithMockSuccess selects the other one.
// Every resolution is logged with enough detail to reconstruct the call.
func (c *Client) dispatchMock(svc *Service, ep *Endpoint, m *Model, success bool) Response {
	branch := "failure"
	mock := ep.MockFailure
	def := ErrorResponse("mocked error response")
	if success {
		branch = "success"
		mock = ep.MockSuccess
		def = SuccessResponse("mocked success response", nil)
	}

	res := mock.resolve(m, def)

	payload, _ := json.Marshal(m.Data())
	c.log.Debug("mock dispatch",
		slog.String("method", ep.Method),
		slog.String("path", svc.BasePath()+ep.Path),
		slog.String("payload", string(payload)),
		slog.String("branch", branch),
	)
	return res
}

// dispatch performs the real transport call. Transport failures are
// normalized into generic envelopes; raw error details go to the log, not
// to the caller.
func (c *Client) dispatch(ctx context.Context, svc *Service, ep *Endpoint, m *Model, headers map[string]string) Response {
	var token string
	if ep.RequiresAuth {
		if c.tokenProvider == nil {
			return ErrorResponse("authentication required")
		}
		tok, err := c.tokenProvider(ctx)
		if err != nil || tok == "" {
			return ErrorResponse("authentication required")
		}
		token = tok
	}

	fullURL := c.host + svc.BasePath() + ep.Path
	res, err := c.transport.roundTrip(ctx, transportRequest{
		method:  ep.Method,
		url:     fullURL,
		body:    m.Data(),
		headers: headers,
		token:   token,
	})
	if err != nil {
		c.log.Error("dispatch failed",
			slog.String("method", ep.Method),
			slog.String("url", fullURL),
			slog.Any("error", err),
		)
		switch {
		case errors.Is(err, ErrRequestTimeout):
			return ErrorResponse("request timed out")
		case errors.Is(err, ErrInvalidResponse):
			return ErrorResponse("invalid server response")
		default:
			return ErrorResponse("request failed")
		}
	}

	c.log.Debug("dispatch",
		slog.String("method", ep.Method),
		slog.String("url", fullURL),
		slog.Bool("success", res.Success),
	)
	return res
}
