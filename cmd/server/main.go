package main

import (
	"github.com/unimatch/campus-platform/internal/config"
	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/logger"
	"github.com/unimatch/campus-platform/internal/routes"
	"github.com/unimatch/campus-platform/internal/ws"
)

func main() {
	log := logger.New("server")

	// Load configuration
	cfg := config.Load()
	log.Infow("config loaded", "database_type", cfg.DatabaseType)

	// Initialize database
	if err := database.Initialize(cfg); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}

	// Start the websocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Setup router
	router := routes.SetupRouter(cfg, hub)

	addr := cfg.ServerHost + ":" + cfg.ServerPort
	log.Infow("server starting", "addr", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
