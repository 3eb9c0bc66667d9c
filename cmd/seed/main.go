package main

import (
	"context"
	"log"
	"os"

	"kol-marketplace/internal/config"
	"kol-marketplace/internal/db"
	"kol-marketplace/internal/seed"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg := config.Load(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatalf("seed: %v", err)
	}

	logger.Println("seed data applied")
}
