// Package api provides HTTP handlers for the greeter service.
package api

// APIVersion represents the current API version supported by this server.
// It describes the capability level of the public router, not a URL prefix.
const (
	// APIVersion1 serves the plain-text greeting on GET /.
	APIVersion1 = 1

	// CurrentAPIVersion is the highest API version supported by this server.
	CurrentAPIVersion = APIVersion1
)

// ServiceName identifies this service in status responses
const ServiceName = "go-hello-server"

// APICapabilities describes the features available at each API version.
var APICapabilities = map[int][]string{
	APIVersion1: {
		"greeting",
	},
}

// StatusResponse is the response from the /status and /health endpoints.
type StatusResponse struct {
	Status       string   `json:"status"`
	Service      string   `json:"service"`
	Version      string   `json:"version"`
	APIVersion   int      `json:"api_version"`
	Capabilities []string `json:"capabilities,omitempty"`
}
