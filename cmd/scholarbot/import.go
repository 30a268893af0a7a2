package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scholarbot/internal/config"
	"scholarbot/internal/pdfmeta"
	"scholarbot/internal/session"
)

var (
	importConversation string
	importArchive      string
)

var importCmd = &cobra.Command{
	Use:   "import <pdf>...",
	Short: "Import PDFs into a conversation's bibliography",
	Long: `Import one or more PDF files into a conversation's bibliography.

Title, year and DOI are extracted from the document text and the
resulting papers are registered in the named conversation. Requires a
configured archive so the conversation survives the process.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importConversation, "conversation", "", "Conversation ID to import into (required)")
	importCmd.Flags().StringVar(&importArchive, "archive", "", "SQLite archive path (overrides config)")
	importCmd.MarkFlagRequired("conversation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if importArchive != "" {
		cfg.ArchivePath = importArchive
	}
	if cfg.ArchivePath == "" {
		return fmt.Errorf("no archive configured; set archive_path in %s or SCHOLARBOT_ARCHIVE", config.Path())
	}

	sessions := session.NewManager()
	db, err := openArchive(cfg, sessions)
	if err != nil {
		return err
	}
	defer db.Close()

	s := sessions.Get(importConversation)
	s.Lock()
	defer s.Unlock()

	for _, path := range args {
		rec, err := pdfmeta.Extract(path)
		if err != nil {
			log.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		idx, err := s.Registry.AddPaper(rec)
		if err != nil {
			log.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		fmt.Printf("✓ Imported paper %d: %s\n", idx, rec.Title)
	}

	if err := db.SaveSession(s); err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}
