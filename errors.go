package apikit

import "errors"

// Domain errors for client configuration and call resolution, designed for
// error wrapping and classification with errors.Is.
//
// Error classification strategy:
//   - Configuration errors: invalid setup (unnamed service, duplicate model,
//     unknown model or rule), reported at registration time
//   - Resolution errors: unknown service/endpoint names at call time, routine
//     runtime conditions surfaced as failing envelopes by Call
var (
	ErrServiceUnnamed   = errors.New("service has no name")
	ErrServiceNotFound  = errors.New("service not found")
	ErrEndpointExists   = errors.New("endpoint already exists")
	ErrEndpointNotFound = errors.New("endpoint not found")
	ErrModelExists      = errors.New("model already exists")
	ErrModelNotFound    = errors.New("model does not exist")
	ErrRuleNotFound     = errors.New("validation rule not found")
	ErrMissingHost      = errors.New("missing API host")
)
