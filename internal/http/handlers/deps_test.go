package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snapfind/internal/classify"
	"snapfind/internal/config"
	"snapfind/internal/kv"
)

func TestNewResolverPicksProvider(t *testing.T) {
	store := kv.NewMemory()

	var cfg config.Config
	cfg.Classifier.Provider = "huggingface"
	assert.IsType(t, &classify.HuggingFace{}, NewResolver(cfg, store))

	cfg.Classifier.Provider = "gemini"
	assert.IsType(t, &classify.Gemini{}, NewResolver(cfg, store))

	cfg.Classifier.Cache = true
	assert.IsType(t, &classify.Cached{}, NewResolver(cfg, store))
}

func TestNewResolverNoCacheOnMemoryStore(t *testing.T) {
	var cfg config.Config
	cfg.Classifier.Cache = true
	cfg.Store.Driver = "memory"
	assert.IsType(t, &classify.HuggingFace{}, NewResolver(cfg, kv.NewMemory()))
}

func TestNewDepsAnalyzeLimitFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.Server.AnalyzeLimit = 7
	d := NewDeps(kv.NewMemory(), NewResolver(cfg, kv.NewMemory()), cfg)
	assert.Equal(t, 7, d.AnalyzeLimit)
}
