package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/pkg/config"
)

// TestHarness runs the application behind a real loopback HTTP server
type TestHarness struct {
	T      *testing.T
	Server *httptest.Server
	Config *config.Config
	Router *gin.Engine
	Client *http.Client

	// BaseURL is the URL of the test server
	BaseURL string
}

// TestHarnessOption configures the test harness
type TestHarnessOption func(*TestHarness)

// WithHarnessConfig sets a custom config for the test harness
func WithHarnessConfig(cfg *config.Config) TestHarnessOption {
	return func(h *TestHarness) {
		h.Config = cfg
	}
}

// NewTestHarness creates a new test harness with a running test server
func NewTestHarness(t *testing.T, opts ...TestHarnessOption) *TestHarness {
	t.Helper()

	h := &TestHarness{
		T:      t,
		Client: &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.Config == nil {
		h.Config = config.Default()
	}

	h.Router = New(h.Config, zap.NewNop())
	h.Server = httptest.NewServer(h.Router)
	h.BaseURL = h.Server.URL

	t.Cleanup(func() {
		h.Server.Close()
	})

	return h
}

// Request makes an HTTP request with an optional raw body
func (h *TestHarness) Request(method, path, body string, header http.Header) *Response {
	h.T.Helper()

	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, h.BaseURL+path, bodyReader)
	if err != nil {
		h.T.Fatalf("Failed to create request: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		h.T.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		h.T.Fatalf("Failed to read response body: %v", err)
	}

	return &Response{T: h.T, Code: resp.StatusCode, Header: resp.Header, Body: string(data), Proto: resp.Proto}
}

// GET makes a GET request
func (h *TestHarness) GET(path string) *Response {
	return h.Request(http.MethodGet, path, "", nil)
}

// Response holds a fully read HTTP response
type Response struct {
	T      *testing.T
	Code   int
	Header http.Header
	Body   string
	Proto  string
}

// Status asserts the response status code
func (r *Response) Status(expected int) *Response {
	r.T.Helper()
	if r.Code != expected {
		r.T.Errorf("Expected status %d, got %d (body: %q)", expected, r.Code, r.Body)
	}
	return r
}

// BodyEquals asserts the exact response body
func (r *Response) BodyEquals(expected string) *Response {
	r.T.Helper()
	if r.Body != expected {
		r.T.Errorf("Expected body %q, got %q", expected, r.Body)
	}
	return r
}

// NotGreeting asserts the response is not the 200 greeting
func (r *Response) NotGreeting() *Response {
	r.T.Helper()
	if r.Code == http.StatusOK && r.Body == "Hello World" {
		r.T.Errorf("Expected a non-greeting response, got 200 %q", r.Body)
	}
	return r
}
