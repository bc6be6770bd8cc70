package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ambazonia-archive/archive-qa/internal/config"
	"github.com/ambazonia-archive/archive-qa/internal/core/corpus"
	"github.com/ambazonia-archive/archive-qa/internal/core/ports"
	"github.com/ambazonia-archive/archive-qa/internal/core/usecase"
	"github.com/ambazonia-archive/archive-qa/internal/infrastructure/llm/anthropic"
	"github.com/ambazonia-archive/archive-qa/internal/infrastructure/ratelimit"
	"github.com/ambazonia-archive/archive-qa/internal/infrastructure/resilience"
)

type App struct {
	Config  config.Config
	Corpus  *corpus.Corpus
	Limiter *ratelimit.Limiter

	AnswerUC  ports.QuestionAnswerer
	RelatedUC ports.RelatedDocumentsFinder

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	corp, err := corpus.Load(cfg.CorpusDocumentsPath, cfg.CorpusFAQPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	slog.Info("corpus_loaded",
		"documents", len(corp.Documents()),
		"faq_entries", len(corp.FaqEntries()),
	)

	refusal := usecase.NewRefusalPolicy()
	if cfg.RefusalPolicyPath != "" {
		refusal, err = usecase.LoadRefusalPolicy(cfg.RefusalPolicyPath)
		if err != nil {
			return nil, fmt.Errorf("load refusal policy: %w", err)
		}
	}

	generator := anthropic.New(anthropic.Config{
		BaseURL:           cfg.LLMBaseURL,
		APIKey:            cfg.LLMAPIKey,
		Model:             cfg.LLMModel,
		MaxTokens:         cfg.LLMMaxTokens,
		Timeout:           time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.LLMRequestsPerSecond,
		Resilience:        resilience.DefaultConfig(),
	})
	if !generator.Configured() {
		slog.Warn("llm_not_configured", "hint", "AI mode will return LLM_NOT_CONFIGURED")
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	limiter := ratelimit.New(cfg.RateLimitMax, window)

	retriever := usecase.NewRetriever(corp)
	answerUC := usecase.NewAnswerUseCase(retriever, refusal, generator)
	relatedUC := usecase.NewRelatedUseCase(corp)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	go sweepLoop(sweepCtx, limiter, window)

	return &App{
		Config:  cfg,
		Corpus:  corp,
		Limiter: limiter,

		AnswerUC:  answerUC,
		RelatedUC: relatedUC,

		closeFn: stopSweep,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// sweepLoop periodically drops expired rate buckets so the bucket map stays
// bounded by live client cardinality.
func sweepLoop(ctx context.Context, limiter *ratelimit.Limiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(); removed > 0 {
				slog.Debug("rate_buckets_swept", "removed", removed)
			}
		}
	}
}
