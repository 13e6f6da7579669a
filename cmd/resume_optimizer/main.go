// Package main provides the entry point for the resume optimizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_optimizer",
	Short: "Resume Optimizer CLI",
	Long:  "Resume Optimizer tailors a parsed resume to a job posting: it extracts keywords from the posting, matches them against resume bullets with embeddings, and rewrites the strongest matches.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
