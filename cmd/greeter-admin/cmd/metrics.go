package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var metricsPrefix string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := NewClient(adminURL).Get("/metrics")
		if err != nil {
			return err
		}

		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "#") {
				continue
			}
			if metricsPrefix != "" && !strings.HasPrefix(line, metricsPrefix) {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return scanner.Err()
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsPrefix, "prefix", "", "Only print samples whose name starts with this prefix")
	rootCmd.AddCommand(metricsCmd)
}
