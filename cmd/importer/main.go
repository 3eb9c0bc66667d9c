package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"kol-marketplace/internal/config"
	"kol-marketplace/internal/db"
	"kol-marketplace/internal/importer"
	pkgrepo "kol-marketplace/internal/repository/pkg"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to package catalog CSV")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg := config.Load(logger)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, pkgrepo.NewPostgres(pool, logger), logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d package items in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
