// Package main is the entry point for the wordcap API.
package main

import (
	"fmt"
	"os"

	"github.com/emilythestrangee/wordcap/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
