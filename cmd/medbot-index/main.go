package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"medbot/internal/app"
	"medbot/internal/config"
	"medbot/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	dir := flag.String("dir", "", "Document directory (defaults to documents.dir from config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(logging.Config{
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Level:      cfg.Logging.Level,
	})

	svc, err := app.BuildService(cfg)
	if err != nil {
		logger.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	target := *dir
	if target == "" {
		target = cfg.Documents.Dir
	}

	logger.Info("starting ingestion", "dir", target, "store", cfg.VectorStore.Type)
	stats, err := svc.IngestDirectory(context.Background(), target)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d chunks from %d documents.\n", stats.Chunks, stats.Documents)
}
