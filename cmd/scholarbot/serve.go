package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scholarbot/internal/config"
	"scholarbot/internal/session"
)

var (
	serveAddr    string
	serveArchive string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP chat gateway",
	Long: `Run scholarbot as an HTTP chat gateway.

Each request carries a conversation ID and a message; the response is
the assistant's reply for that conversation. Conversations are isolated
from each other and persist across restarts when an archive is
configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveArchive, "archive", "", "SQLite archive path (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

type messageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

type messageResponse struct {
	ResponseText string `json:"response_text"`
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveArchive != "" {
		cfg.ArchivePath = serveArchive
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

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})

	router.POST("/v1/messages", func(c *gin.Context) {
		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reply := dispatcher.HandleMessage(c.Request.Context(), req.ConversationID, req.Text)
		persist(db, sessions.Get(req.ConversationID), log)
		c.JSON(http.StatusOK, messageResponse{ResponseText: reply})
	})

	log.Info("listening", zap.String("addr", serveAddr))
	return router.Run(serveAddr)
}
