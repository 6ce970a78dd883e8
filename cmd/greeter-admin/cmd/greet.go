package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-hello-server/internal/api"
)

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Call GET / on the public listener",
	Long:  `Prints the greeting and fails if it is not the expected text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := NewClient(publicURL).Get("/")
		if err != nil {
			return err
		}
		if string(data) != api.Greeting {
			return fmt.Errorf("unexpected greeting: %q", string(data))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(greetCmd)
}
