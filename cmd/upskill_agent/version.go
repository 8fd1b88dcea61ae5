package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags
var version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the upskill_agent version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("upskill_agent %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
