package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"internship-chatbot-be/internal/bootstrap"
	"internship-chatbot-be/internal/config"
	"internship-chatbot-be/internal/server"
	"internship-chatbot-be/internal/tracer"
	"internship-chatbot-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	// Postgres backs the pgvector store and the chat audit log. Both are
	// optional; without a connection string the service runs on Qdrant
	// with logging to file only.
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	go container.WarmupService.Warm(context.Background())

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
