package main

import (
	"context"
	"log"
	"os"

	"kol-marketplace/internal/config"
	"kol-marketplace/internal/db"
	"kol-marketplace/internal/migrate"
)

func main() {
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg := config.Load(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
