// Package main provides the entry point for the CV Builder HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvbuilder",
	Short: "CV Builder HTTP API Server",
	Long:  "CV Builder exposes a REST API for building resumes step by step, rendering them with professional templates and exporting them as PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
