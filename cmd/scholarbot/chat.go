package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scholarbot/internal/config"
	"scholarbot/internal/dispatch"
	"scholarbot/internal/session"
)

var (
	chatConversation string
	chatArchive      string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive terminal session",
	Long: `Start an interactive terminal session with the assistant.

Messages are read line by line from stdin. Use !help inside the session
to see the command surface, and Ctrl-D or "exit" to quit.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatConversation, "conversation", "terminal", "Conversation ID to use")
	chatCmd.Flags().StringVar(&chatArchive, "archive", "", "SQLite archive path (overrides config)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if chatArchive != "" {
		cfg.ArchivePath = chatArchive
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

	fmt.Println("scholarbot — type !help for commands, exit to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		reply := dispatcher.HandleMessage(cmd.Context(), chatConversation, line)
		for _, chunk := range dispatch.SplitMessage(reply, dispatch.DefaultChunkLimit) {
			fmt.Println(chunk)
		}
		persist(db, sessions.Get(chatConversation), log)
	}
	return scanner.Err()
}
