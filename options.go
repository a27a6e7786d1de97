package apikit

import (
	"log/slog"
	"net/http"
	"time"
)

// clientOptions contains all configurable options for client construction.
type clientOptions struct {
	tokenProvider TokenProvider
	httpClient    *http.Client
	userAgent     string
	headers       map[string]string
	log           *slog.Logger
}

func defaultOptions(cfg Config) *clientOptions {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &clientOptions{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: cfg.UserAgent,
		headers:   make(map[string]string),
		log:       slog.Default(),
	}
}

// Option is a functional option for configuring a Client.
type Option func(*clientOptions)

// WithTokenProvider sets the bearer token source used by endpoints that
// require authentication.
func WithTokenProvider(tp TokenProvider) Option {
	return func(o *clientOptions) {
		if tp != nil {
			o.tokenProvider = tp
		}
	}
}

// WithHTTPClient replaces the default pooled HTTP client. This allows custom
// transports, proxies, or testing; nil clients are ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithUserAgent overrides the User-Agent header on outgoing requests.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithHeader sets a global header applied to every call unless the service
// or endpoint overrides the key.
func WithHeader(key, value string) Option {
	return func(o *clientOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithHeaders sets multiple global headers at once.
func WithHeaders(headers map[string]string) Option {
	return func(o *clientOptions) {
		for k, v := range headers {
			if k != "" && v != "" {
				o.headers[k] = v
			}
		}
	}
}

// WithLogger sets the logger used for rule-overwrite warnings and dispatch
// diagnostics. Defaults to slog.Default; nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(o *clientOptions) {
		if log != nil {
			o.log = log
		}
	}
}
