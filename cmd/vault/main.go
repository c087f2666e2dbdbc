package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TickVault/internal/config"
	"TickVault/internal/decoder"
	"TickVault/internal/ingest"
	"TickVault/internal/resolver"
	"TickVault/internal/scheduler"
	"TickVault/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TickVault starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("VAULT_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init object store
	var st store.Store
	switch cfg.Store.Backend {
	case "sqlite":
		ss, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using memory: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
		}
	case "postgres":
		ps, err := store.NewPostgresStore(ctx, store.PostgresConfig{
			Host:     cfg.Store.Postgres.Host,
			Port:     cfg.Store.Postgres.Port,
			User:     cfg.Store.Postgres.User,
			Password: cfg.Store.Postgres.Password,
			Name:     cfg.Store.Postgres.Name,
			SSLMode:  cfg.Store.Postgres.SSLMode,
			MinConns: cfg.Store.Postgres.MinConns,
			MaxConns: cfg.Store.Postgres.MaxConns,
		})
		if err != nil {
			log.Fatalf("[FATAL] init postgres store: %v", err)
		}
		st = ps
	default:
		st = store.NewMemoryStore()
	}
	defer st.Close()
	log.Printf("[INFO] object store backend: %s", cfg.Store.Backend)

	res := resolver.New(cfg.Dataset.Namespace)

	// Ingest the dataset before any reader runs.
	in := ingest.New(st, res)
	key, err := in.SaveFile(cfg.Dataset.Symbol, cfg.Dataset.File)
	if err != nil {
		log.Fatalf("[FATAL] ingest dataset: %v", err)
	}
	log.Printf("[INFO] dataset ready under %s", key)

	// Init scheduler
	offset := time.Duration(cfg.Decoder.OffsetHours) * time.Hour
	policy := decoder.Policy(cfg.Decoder.Policy)
	tickStep := time.Duration(cfg.Replay.TickStepHours) * time.Hour
	sched := scheduler.NewScheduler(st, res, cfg.Dataset.Symbol, offset, policy, tickStep)
	if err := sched.Register(cfg.Replay.Cron); err != nil {
		log.Fatalf("[FATAL] register replay task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing replay cycle now")
		go sched.RunNow()
	}

	log.Println("[INFO] TickVault is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TickVault stopped")
}
