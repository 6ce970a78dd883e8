// Package main provides the greeter-admin CLI for checking a running greeter server.
package main

import (
	"os"

	"github.com/sirosfoundation/go-hello-server/cmd/greeter-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
