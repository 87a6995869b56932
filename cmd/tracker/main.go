package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PriceTracker/internal/analyzer"
	"PriceTracker/internal/collector"
	"PriceTracker/internal/config"
	"PriceTracker/internal/scheduler"
	"PriceTracker/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PriceTracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init collector with all site fetchers
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	col := collector.NewCollector(collector.DefaultFetchers(cfg.HTTP.Proxy, timeout)...)
	log.Printf("[INFO] tracking %d products", len(cfg.Products))

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewMemoryStore()
	}

	// Init analyzer
	an := analyzer.New(analyzer.Config{
		ShortWindow:         cfg.Analyzer.ShortWindow,
		LongWindow:          cfg.Analyzer.LongWindow,
		ChangeThreshold:     cfg.Analyzer.ChangeThreshold,
		VolatilityThreshold: cfg.Analyzer.VolatilityThreshold,
		TrailingWindow:      cfg.Analyzer.TrailingWindow,
		Alerts: analyzer.AlertThresholds{
			CriticalDropPercent: cfg.Analyzer.Alerts.CriticalDropPercent,
			GoodDealPercent:     cfg.Analyzer.Alerts.GoodDealPercent,
			StableBandPercent:   cfg.Analyzer.Alerts.StableBandPercent,
			AverageBandRatio:    cfg.Analyzer.Alerts.AverageBandRatio,
			OverpricedPercent:   cfg.Analyzer.Alerts.OverpricedPercent,
		},
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, st, an, cfg)
	if err := sched.RegisterAll(cfg.Schedule.CollectCron, cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, collecting and reporting now")
		go func() {
			sched.RunCollectNow()
			sched.RunReportNow()
		}()
	}

	log.Println("[INFO] PriceTracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PriceTracker stopped")
}
