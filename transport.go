package apikit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Transport-level errors. The client never leaks these to callers directly;
// each category is normalized into a generic failing envelope.
var (
	ErrRequestFailed   = errors.New("request failed")
	ErrInvalidResponse = errors.New("invalid response body")
	ErrRequestTimeout  = errors.New("request timeout")
)

// maxResponseBody caps how much of a reply is read (1MB). Backends speaking
// the envelope protocol never come close; the limit guards against
// misconfigured hosts returning arbitrary content.
const maxResponseBody = 1 << 20

// transportRequest is one fully resolved request/response cycle: everything
// the dispatch pipeline computed, nothing about how it was computed.
type transportRequest struct {
	method  string
	url     string
	body    map[string]any
	headers map[string]string
	token   string
}

// Transport performs single request/response cycles against the backend and
// decodes replies into envelopes. Zero value is not usable; use newTransport.
type Transport struct {
	// client is reused across requests for connection pooling
	client    *http.Client
	userAgent string
}

func newTransport(client *http.Client, userAgent string) *Transport {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if userAgent == "" {
		userAgent = "apikit/1.0"
	}
	return &Transport{client: client, userAgent: userAgent}
}

// isReadOnly reports whether the method carries its data in the query string
// instead of a request body.
func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// queryEncode flattens field data into URL query parameters.
func queryEncode(data map[string]any) string {
	values := url.Values{}
	for k, v := range data {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// roundTrip performs one request/response cycle and decodes the reply into
// an envelope. All failures are classified under the transport sentinel
// errors so the caller can map them to user-safe messages.
func (t *Transport) roundTrip(ctx context.Context, tr transportRequest) (Response, error) {
	reqURL := tr.url
	var body io.Reader
	if isReadOnly(tr.method) {
		if q := queryEncode(tr.body); q != "" {
			reqURL += "?" + q
		}
	} else {
		payload, err := json.Marshal(tr.body)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, tr.method, reqURL, body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range tr.headers {
		req.Header.Set(k, v)
	}
	if tr.token != "" {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
			return Response{}, fmt.Errorf("%w: %w", ErrRequestTimeout, err)
		}
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	envelope, err := ResponseFromJSON(raw)
	if err != nil {
		return Response{}, fmt.Errorf("%w: status %d: %w", ErrInvalidResponse, resp.StatusCode, err)
	}
	return envelope, nil
}
