package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scholarbot/internal/citation"
	"scholarbot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fmt.Printf("Config file:    %s\n", config.Path())
		fmt.Printf("default_style:  %s\n", cfg.DefaultStyle)
		fmt.Printf("search_limit:   %d\n", cfg.SearchLimit)
		fmt.Printf("archive_path:   %s\n", orUnset(cfg.ArchivePath))
		fmt.Printf("gemini_model:   %s\n", orUnset(cfg.GeminiModel))
		fmt.Printf("s2_api_key:     %s\n", redact(cfg.S2APIKey))
		fmt.Printf("gemini_api_key: %s\n", redact(cfg.GeminiAPIKey))
		fmt.Printf("related_max_results: %d\n", cfg.RelatedMaxResults)
		fmt.Printf("related_weights: author=%.2f lexical=%.2f recency=%.2f\n",
			cfg.RelatedWeights.Author, cfg.RelatedWeights.Lexical, cfg.RelatedWeights.Recency)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it back to the config file.

Keys: default_style, search_limit, related_max_results, archive_path,
gemini_model.
API keys are taken from the environment (S2_API_KEY, GEMINI_API_KEY)
and are not stored in the file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		key, value := args[0], args[1]
		switch key {
		case "default_style":
			if _, err := citation.ParseStyle(value); err != nil {
				return err
			}
			cfg.DefaultStyle = value
		case "search_limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("search_limit must be a positive integer, got %q", value)
			}
			cfg.SearchLimit = n
		case "related_max_results":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("related_max_results must be a positive integer, got %q", value)
			}
			cfg.RelatedMaxResults = n
		case "archive_path":
			cfg.ArchivePath = value
		case "gemini_model":
			cfg.GeminiModel = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("✓ %s set to %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func redact(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}
