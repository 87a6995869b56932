package scheduler

import (
	"context"
	"fmt"
	"log"

	"PriceTracker/internal/analyzer"
	"PriceTracker/internal/collector"
	"PriceTracker/internal/config"
	"PriceTracker/internal/model"
	"PriceTracker/internal/report"
	"PriceTracker/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks: periodic collection of every configured
// product and periodic analysis reports over the stored history.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     store.Store
	Analyzer  *analyzer.PriceAnalyzer
	Products  []config.ProductConfig
	ReportDir string
	Window    int // trailing history points loaded per report
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, st store.Store, an *analyzer.PriceAnalyzer, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Store:     st,
		Analyzer:  an,
		Products:  cfg.Products,
		ReportDir: cfg.Output.ReportDir,
		Window:    cfg.Analyzer.TrailingWindow,
		Ctx:       ctx,
	}
}

// RegisterAll registers the collect and report tasks.
func (s *Scheduler) RegisterAll(collectCron, reportCron string) error {
	if _, err := s.Cron.AddFunc(collectCron, s.collectTask); err != nil {
		return fmt.Errorf("register collect task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCollectNow executes the collect task immediately.
func (s *Scheduler) RunCollectNow() { s.collectTask() }

// RunReportNow executes the report task immediately.
func (s *Scheduler) RunReportNow() { s.reportTask() }

func (s *Scheduler) collectTask() {
	log.Printf("[INFO] collecting %d products", len(s.Products))
	saved := 0
	for _, p := range s.Products {
		if s.Ctx.Err() != nil {
			return
		}
		obs, err := s.Collector.Collect(p.URL, p.DiscountPercent)
		if err != nil {
			// Price unknown for this observation; skip it and move on.
			log.Printf("[WARN] collect %s: %v", p.URL, err)
			continue
		}
		if err := s.Store.SaveObservation(obs); err != nil {
			log.Printf("[ERROR] save %s: %v", p.URL, err)
			continue
		}
		saved++
		log.Printf("[INFO] %s: %.2f %s", obs.Product.Name, obs.CurrentPrice, obs.Currency)
	}
	log.Printf("[INFO] collect finished: %d/%d saved", saved, len(s.Products))
}

func (s *Scheduler) reportTask() {
	products, err := s.Store.Products()
	if err != nil {
		log.Printf("[ERROR] load products: %v", err)
		return
	}
	if len(products) == 0 {
		log.Println("[WARN] no products stored yet, skipping report")
		return
	}

	var analyses []model.PriceAnalysis
	for _, p := range products {
		if s.Ctx.Err() != nil {
			return
		}
		series, err := s.Store.History(p.URL, s.Window)
		if err != nil {
			log.Printf("[ERROR] history %s: %v", p.URL, err)
			continue
		}
		res, err := s.Analyzer.Analyze(series, p)
		if err != nil {
			log.Printf("[WARN] analyze %s: %v", p.URL, err)
			continue
		}
		analyses = append(analyses, *res)

		log.Printf("[INFO] analysis:\n%s", report.FormatAnalysis(res))
		if path, err := report.WriteJSON(s.ReportDir, res); err != nil {
			log.Printf("[ERROR] export %s: %v", p.URL, err)
		} else {
			log.Printf("[INFO] exported %s", path)
		}
	}

	if len(analyses) > 0 {
		log.Printf("[INFO] summary:\n%s", report.FormatSummaryTable(analyses))
	}
}
