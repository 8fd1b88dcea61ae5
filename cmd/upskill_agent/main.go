// Package main provides the entry point for the upskill agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "upskill_agent",
	Short: "Learning roadmap generator",
	Long:  "Upskill Agent compares a resume against a job description, researches the company and role, and generates a prioritized, staged learning roadmap for the skill gaps.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
