package services

import (
	"context"
	"fmt"

	"snapfind/internal/catalog"
	"snapfind/internal/classify"
	"snapfind/internal/domain"
	applog "snapfind/internal/log"
)

// AnalysisService turns an image into a displayable product. It never fails:
// any classifier or synthesis problem yields the fallback product with a
// warning instead.
type AnalysisService struct {
	Labels classify.Resolver
	Synth  *catalog.Synthesizer
}

func NewAnalysisService(labels classify.Resolver, synth *catalog.Synthesizer) *AnalysisService {
	return &AnalysisService{Labels: labels, Synth: synth}
}

func (s *AnalysisService) Analyze(ctx context.Context, image []byte) domain.AnalysisResult {
	res, err := s.analyze(ctx, image)
	if err != nil {
		applog.Warn(nil, "analysis.fallback", err, map[string]any{"kind": classify.Kind(err)})
		return domain.AnalysisResult{
			Product: s.Synth.Fallback(),
			Warning: catalog.FallbackWarning,
		}
	}
	return res
}

func (s *AnalysisService) analyze(ctx context.Context, image []byte) (res domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panic: %v", r)
		}
	}()

	labels, err := s.Labels.Resolve(ctx, image)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	top := domain.Label{Label: "unknown", Score: 0}
	if len(labels) > 0 {
		top = labels[0]
	}
	applog.Info(nil, "analysis.label", map[string]any{
		"label": top.Label,
		"score": top.Score,
		"match": catalog.Match(top.Label),
	})
	return domain.AnalysisResult{
		Product:        s.Synth.Synthesize(top.Label),
		DetectedObject: top.Label,
	}, nil
}
