package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pastforward",
	Short: "PastForward - Historical social media post generator",
	Long: `PastForward generates social media posts as they might have been written
by people living in historical eras.
	
It composes an era-grounded prompt, asks an LLM for a structured post,
and falls back to a built-in synthetic generator when no model is
reachable, so a request always yields a complete post for the chosen
platform (instagram, twitter or reddit).`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
