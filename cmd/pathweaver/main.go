// Package main provides the entry point for the PathWeaver CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathweaver",
	Short: "Learning path discovery and curation",
	Long:  "PathWeaver discovers educational resources for a topic, scores and ranks them, and assembles a structured learning path.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
