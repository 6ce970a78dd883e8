package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-hello-server/internal/api"
)

func fetchStatus(path string) ([]byte, *api.StatusResponse, error) {
	data, err := NewClient(adminURL).Get(path)
	if err != nil {
		return nil, nil, err
	}

	var resp api.StatusResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return data, &resp, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, resp, err := fetchStatus("/status")
		if err != nil {
			return err
		}

		if output == "json" {
			return printJSON(cmd.OutOrStdout(), data)
		}

		printTable(cmd.OutOrStdout(),
			[]string{"SERVICE", "STATUS", "VERSION", "API VERSION", "CAPABILITIES"},
			[][]string{{
				resp.Service,
				resp.Status,
				resp.Version,
				strconv.Itoa(resp.APIVersion),
				strings.Join(resp.Capabilities, ","),
			}})
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long:  `Exits with a non-zero status unless the server reports ok.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, resp, err := fetchStatus("/health")
		if err != nil {
			return err
		}
		if resp.Status != "ok" {
			return fmt.Errorf("server is unhealthy: %s", resp.Status)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
}
