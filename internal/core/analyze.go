package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"symptom-checker/internal/llm"
	"symptom-checker/internal/metrics"
	"symptom-checker/pkg"
)

// SymptomService turns a symptom query into a structured analysis.  It
// builds the prompt, makes exactly one provider call and parses the reply.
type SymptomService struct {
	LLM    llm.Client
	logger *zap.Logger
}

// NewSymptomService constructs a SymptomService with the given LLM client.
func NewSymptomService(client llm.Client, logger *zap.Logger) *SymptomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SymptomService{LLM: client, logger: logger}
}

// Analyze runs a query through the provider.  It returns either an
// Analysis or one of ErrMissingInput, ErrEmptyResponse or a *ParseError,
// never both.  Nothing is retried.
func (s *SymptomService) Analyze(ctx context.Context, q pkg.SymptomQuery) (*pkg.Analysis, error) {
	q = pkg.SymptomQuery{
		Symptoms: strings.TrimSpace(q.Symptoms),
		Age:      strings.TrimSpace(q.Age),
		Gender:   strings.TrimSpace(q.Gender),
	}
	if q.Symptoms == "" {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeMissingInput).Inc()
		return nil, ErrMissingInput
	}

	prompt := BuildPrompt(q)
	start := time.Now()
	reply, err := s.LLM.Complete(ctx, prompt)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("completion call failed", zap.Error(err))
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeEmptyResponse).Inc()
		return nil, fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}
	s.logger.Debug("completion reply", zap.String("reply", reply))
	if strings.TrimSpace(reply) == "" {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeEmptyResponse).Inc()
		return nil, ErrEmptyResponse
	}

	analysis, err := ParseCompletion(reply)
	if err != nil {
		s.logger.Error("failed to parse completion", zap.Error(err))
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeParseFailure).Inc()
		return nil, err
	}
	s.logger.Info("symptom analysis complete",
		zap.Int("causes", len(analysis.Causes)),
		zap.Int("advice", len(analysis.Advice)),
		zap.Duration("elapsed", time.Since(start)),
	)
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return analysis, nil
}
