package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "payloadbuf",
	Short: "Payload buffer utilities",
	Long:  `Utilities for building byte-exact payloads: cyclic pattern generation and crash-offset lookup.`,
}

func main() {
	rootCmd.AddCommand(cyclicCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
