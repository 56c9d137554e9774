package main

import (
	"context"
	"log"

	"xplorer-be/internal/bootstrap"
	"xplorer-be/internal/config"
	"xplorer-be/internal/server"
	"xplorer-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is required")
	}
	if len(cfg.Auth.Users) == 0 {
		log.Fatal("[FATAL] AUTH_USERS is required")
	}

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Sessions.Close()
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
