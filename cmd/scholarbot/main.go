// Package main provides the scholarbot CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// verbose enables debug logging.
var verbose bool

func main() {
	// A .env file is optional; environment wins over config values.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scholarbot",
	Short: "Conversational research assistant",
	Long: `scholarbot is a conversational research assistant engine.

It classifies free-form messages into intents, searches for academic
papers, tracks them in a per-conversation bibliography, formats
citations in five styles, and manages research notes and reading lists.

Run it as an HTTP chat gateway (serve), an interactive terminal session
(chat), or a one-shot message dispatch (message).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// newLogger builds the process logger.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
