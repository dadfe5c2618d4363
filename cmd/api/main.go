package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tsinsight/adapters/api"
	"tsinsight/adapters/memory"
	"tsinsight/adapters/postgres"
	"tsinsight/app"
	"tsinsight/internal/config"
	"tsinsight/ports"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		runs, err = postgres.NewRunRepository(db)
		if err != nil {
			log.Fatalf("failed to initialize run repository: %v", err)
		}
		log.Println("using Postgres run repository")
	} else {
		runs = memory.NewRunRepository()
		log.Println("DATABASE_URL not set, using in-memory run repository")
	}

	service := app.NewInsightService()
	server := api.NewApp(cfg, service, runs)

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
