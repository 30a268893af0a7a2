package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scholarbot/internal/archive"
	"scholarbot/internal/citation"
	"scholarbot/internal/config"
	"scholarbot/internal/dispatch"
	"scholarbot/internal/llm"
	"scholarbot/internal/related"
	"scholarbot/internal/scholar"
	"scholarbot/internal/session"
)

// buildDispatcher assembles a dispatcher from configuration. The
// summarizer is optional and only wired when a Gemini API key is set.
func buildDispatcher(ctx context.Context, cfg *config.Config, sessions *session.Manager, log *zap.Logger) (*dispatch.Dispatcher, error) {
	style, err := citation.ParseStyle(cfg.DefaultStyle)
	if err != nil {
		return nil, fmt.Errorf("config default_style: %w", err)
	}

	searchOpts := []scholar.Option{scholar.WithSearchLimit(cfg.SearchLimit)}
	if cfg.S2APIKey != "" {
		searchOpts = append(searchOpts, scholar.WithAPIKey(cfg.S2APIKey))
	}
	searcher := scholar.NewClient(searchOpts...)

	opts := []dispatch.Option{
		dispatch.WithSearcher(searcher),
		dispatch.WithScorer(related.NewScorer(cfg.RelatedWeights)),
		dispatch.WithDefaultStyle(style),
		dispatch.WithMaxRelated(cfg.RelatedMaxResults),
		dispatch.WithLogger(log),
	}

	if cfg.GeminiAPIKey != "" {
		summarizer, err := llm.NewSummarizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("creating summarizer: %w", err)
		}
		opts = append(opts, dispatch.WithSummarizer(summarizer))
	}

	return dispatch.New(sessions, opts...), nil
}

// openArchive opens the conversation archive when a path is configured
// and restores every stored conversation into the session manager.
// Returns nil when no archive is configured.
func openArchive(cfg *config.Config, sessions *session.Manager) (*archive.DB, error) {
	if cfg.ArchivePath == "" {
		return nil, nil
	}
	db, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	ids, err := db.Conversations()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("listing archived conversations: %w", err)
	}
	for _, id := range ids {
		s, err := db.LoadSession(id)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("loading conversation %s: %w", id, err)
		}
		sessions.Put(s)
	}
	return db, nil
}

// persist saves a conversation to the archive if one is open.
func persist(db *archive.DB, s *session.Session, log *zap.Logger) {
	if db == nil {
		return
	}
	s.Lock()
	defer s.Unlock()
	if err := db.SaveSession(s); err != nil {
		log.Warn("failed to save conversation", zap.String("conversation", s.ID), zap.Error(err))
	}
}
