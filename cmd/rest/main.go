package main

import (
	"context"
	"log"

	"dentalcare-be/internal/bootstrap"
	"dentalcare-be/internal/config"
	"dentalcare-be/internal/server"
	"dentalcare-be/internal/tracer"
	"dentalcare-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting session summarizer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background summarizer error: %v", err)
		}
	}()

	// 5. Initialize and run the server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
