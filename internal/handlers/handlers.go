package handlers

import (
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/repository"
	"github.com/bluetrivia/bluetrivia/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Repo repository.FullRepository
	Hub  *websocket.Hub
	Log  logger.Logger
}

// New creates a new Handlers instance with all dependencies
func New(repo repository.FullRepository, hub *websocket.Hub, log logger.Logger) *Handlers {
	return &Handlers{
		Repo: repo,
		Hub:  hub,
		Log:  log,
	}
}
