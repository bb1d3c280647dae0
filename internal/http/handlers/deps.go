package handlers

import (
	"snapfind/internal/catalog"
	"snapfind/internal/classify"
	"snapfind/internal/config"
	"snapfind/internal/kv"
	"snapfind/internal/services"
)

type Deps struct {
	AnalyzeHandler *AnalyzeHandler
	HistoryHandler *HistoryHandler
	PageHandler    *PageHandler

	// AnalyzeLimit is the per-IP budget of analyses per minute; 0 disables it.
	AnalyzeLimit int
}

func NewDeps(store kv.Store, labels classify.Resolver, cfg config.Config) *Deps {
	analysisSvc := services.NewAnalysisService(labels, catalog.NewSynthesizer())
	historySvc := services.NewHistoryService(store, cfg.History.Limit)
	handoffSvc := services.NewHandoffService(store)

	return &Deps{
		AnalyzeHandler: &AnalyzeHandler{Analysis: analysisSvc, MaxBytes: cfg.Image.MaxBytes},
		HistoryHandler: &HistoryHandler{History: historySvc},
		PageHandler: &PageHandler{
			Analysis: analysisSvc,
			History:  historySvc,
			Handoff:  handoffSvc,
			MaxBytes: cfg.Image.MaxBytes,
		},
		AnalyzeLimit: cfg.Server.AnalyzeLimit,
	}
}

// NewResolver builds the configured classifier, wrapped in the label cache
// when enabled. The memory store has no expiry, so it never backs the cache.
func NewResolver(cfg config.Config, store kv.Store) classify.Resolver {
	var r classify.Resolver
	switch cfg.Classifier.Provider {
	case "gemini":
		r = classify.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)
	default:
		r = classify.NewHuggingFace(classify.HuggingFaceOpts{
			URL:     cfg.Classifier.URL,
			Token:   cfg.Classifier.Token,
			Timeout: cfg.Classifier.Timeout,
		})
	}
	if cfg.Classifier.Cache && cfg.Store.Driver != "memory" {
		r = classify.NewCached(r, store)
	}
	return r
}
