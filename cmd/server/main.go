package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"primetime/config"
	"primetime/internal/api"
	"primetime/internal/app"
	"primetime/internal/metrics"
	"primetime/internal/repo"
	"primetime/internal/transport/tcp"
)

func main() {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connection log
	var r repo.Repository = repo.NopRepo{}
	if cfg.DBPath != "" {
		log.Printf("Initializing SQLite connection log at %s...", cfg.DBPath)
		sr, err := repo.NewSQLiteRepo(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize connection log: %v", err)
		}
		r = sr
	}
	defer r.Close()

	// 3. Counters + application service
	m := metrics.New()
	svc := app.NewService(m)

	// 4. TCP query server
	srv := tcp.NewServer(svc, r, m, cfg)
	if err := srv.Listen(); err != nil {
		log.Fatalf("Failed to bind %s: %v", cfg.Addr, err)
	}
	log.Printf("Query server listening on %s", srv.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ctx)
	}()

	// 5. Admin surface
	if cfg.AdminAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		engine := gin.Default()
		api.NewHandler(svc, m, r).SetupRoutes(engine)
		go func() {
			log.Printf("Admin surface on %s", cfg.AdminAddr)
			if err := http.ListenAndServe(cfg.AdminAddr, engine); err != nil {
				log.Printf("Admin surface stopped: %v", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Printf("Shutting down")
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Listener failed: %v", err)
		}
	}
}
