package handlers

import (
	"database/sql"

	"go.uber.org/zap"

	"lingolink/avatar"
	"lingolink/chat"
	"lingolink/config"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	db      *sql.DB
	cfg     *config.Config
	logger  *zap.Logger
	avatars avatar.Provider
	chat    *chat.Client
	syncer  *chat.Syncer
}

func New(db *sql.DB, cfg *config.Config, logger *zap.Logger, avatars avatar.Provider, chatClient *chat.Client, syncer *chat.Syncer) *Handler {
	return &Handler{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		avatars: avatars,
		chat:    chatClient,
		syncer:  syncer,
	}
}
