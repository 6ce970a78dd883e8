// Package cmd contains all CLI commands for greeter-admin.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	adminURL  string
	publicURL string
	output    string
)

// Client wraps HTTP client for greeter API calls
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client for baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Get fetches path and returns the body. Status codes of 400 and above are errors.
func (c *Client) Get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// printJSON formats and prints JSON output
func printJSON(w io.Writer, data []byte) error {
	var formatted bytes.Buffer
	if err := json.Indent(&formatted, data, "", "  "); err != nil {
		// If it's not valid JSON, just print as-is
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintln(w, formatted.String())
	return err
}

// printTable prints rows in aligned columns
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		fmt.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)

	for i := range headers {
		fmt.Fprintf(w, "%s  ", strings.Repeat("-", widths[i]))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(w, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w)
	}
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "greeter-admin",
	Short: "CLI tool for checking a greeter server",
	Long: `greeter-admin queries a running greeter server.

Status, health and metrics come from the admin listener, which must be
enabled with GREETER_ADMIN_PORT. The greet command calls the public route.

Examples:
  # Show server status
  greeter-admin status

  # Exit non-zero unless the server reports ok
  greeter-admin health

  # Show the request counters
  greeter-admin metrics --prefix greeter_http_requests_total

Environment Variables:
  GREETER_ADMIN_URL   Base URL of the admin listener (default: http://localhost:3001)
  GREETER_PUBLIC_URL  Base URL of the public listener (default: http://localhost:3000)`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&adminURL, "url", "u", getEnvOrDefault("GREETER_ADMIN_URL", "http://localhost:3001"), "Admin listener base URL")
	rootCmd.PersistentFlags().StringVar(&publicURL, "public-url", getEnvOrDefault("GREETER_PUBLIC_URL", "http://localhost:3000"), "Public listener base URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, json")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
