package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"modshift/adapters/api"
	"modshift/adapters/boxcar"
	"modshift/adapters/postgres"
	"modshift/app"
	"modshift/internal/config"
	"modshift/internal/pipeline"
	"modshift/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[API] no .env file found, using environment variables")
	}

	cfg, err := config.Load(false)
	if err != nil {
		log.Fatalf("[API] failed to load configuration: %v", err)
	}

	var ledger ports.ReportLedger
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("[API] failed to connect to database: %v", err)
		}
		defer db.Close()
		ledger = postgres.NewReportRepository(db)
	} else {
		log.Printf("[API] DATABASE_URL not set, running without report persistence")
	}

	service := app.NewVetService(
		pipeline.New(cfg.PipelineSettings()),
		boxcar.NewGenerator(),
		ledger,
		nil, // diagnostics are a CLI concern
	)
	batch, err := app.NewBatchVetter(service, cfg.Batch.Workers)
	if err != nil {
		log.Fatalf("[API] failed to create batch vetter: %v", err)
	}

	server := api.NewServer(service, batch, ledger, cfg.Server.GinMode)
	log.Printf("[API] listening on :%s", cfg.Server.Port)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("[API] server exited: %v", err)
	}
}
