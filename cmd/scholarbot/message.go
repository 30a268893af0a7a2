package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scholarbot/internal/config"
	"scholarbot/internal/session"
)

var messageConversation string

var messageCmd = &cobra.Command{
	Use:   "message <text>",
	Short: "Dispatch a single message and print the reply",
	Long: `Dispatch a single message to the assistant and print the reply.

Useful for scripting and for testing archive-backed conversations:
with an archive configured, state accumulated by earlier messages is
visible to later ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMessage,
}

func init() {
	messageCmd.Flags().StringVar(&messageConversation, "conversation", "terminal", "Conversation ID to use")
	rootCmd.AddCommand(messageCmd)
}

func runMessage(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sessions := session.NewManager()
	db, err := openArchive(cfg, sessions)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	dispatcher, err := buildDispatcher(cmd.Context(), cfg, sessions, log)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	reply := dispatcher.HandleMessage(cmd.Context(), messageConversation, text)
	persist(db, sessions.Get(messageConversation), log)
	fmt.Println(reply)
	return nil
}
