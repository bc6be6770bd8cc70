package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
	"github.com/ambazonia-archive/archive-qa/internal/core/ports"
)

const declineAnswer = "This question falls outside the scope of this archive. Please ask about the historical, legal, or political dimensions of the Ambazonia situation."

const (
	deterministicMaxDocs = 4
	deterministicMaxFaqs = 2
)

// AnswerUseCase orchestrates refusal check, retrieval, mode dispatch,
// synthesis and citation extraction for a single question.
type AnswerUseCase struct {
	retriever *Retriever
	refusal   *RefusalPolicy
	generator ports.AnswerGenerator
}

func NewAnswerUseCase(retriever *Retriever, refusal *RefusalPolicy, generator ports.AnswerGenerator) *AnswerUseCase {
	return &AnswerUseCase{
		retriever: retriever,
		refusal:   refusal,
		generator: generator,
	}
}

// Answer resolves a question in the requested mode. The policy parameter
// decides upstream-failure handling: surface returns a typed error, fallback
// downgrades to the deterministic response so interactive callers always get
// an answer.
func (uc *AnswerUseCase) Answer(
	ctx context.Context,
	question string,
	mode domain.Mode,
	maxSources int,
	policy domain.UpstreamPolicy,
) (*domain.AnswerResult, error) {
	if uc.refusal.IsRefused(question) {
		return &domain.AnswerResult{
			Mode:      mode,
			Answer:    declineAnswer,
			Citations: []domain.Citation{},
			Refused:   true,
		}, nil
	}

	src := uc.retriever.Retrieve(question, maxSources)

	if mode == domain.ModeDeterministic {
		return uc.deterministicResult(question, src), nil
	}

	if uc.generator == nil || !uc.generator.Configured() {
		return nil, domain.WrapError(domain.ErrLLMNotConfigured, "answer", errors.New("LLM_API_KEY is not set"))
	}

	// No grounding means no model call: a fixed insufficient-support answer
	// avoids hallucination.
	if src.Total() == 0 {
		return &domain.AnswerResult{
			Mode:      domain.ModeAI,
			Answer:    fmt.Sprintf("Insufficient archive support for the query %q. No relevant sources were retrieved. Browse /documents/archive or /research/orientation for related material.", question),
			Citations: []domain.Citation{},
		}, nil
	}

	answerText, err := uc.generator.Complete(ctx, systemPrompt, buildPrompt(question, src))
	if err != nil {
		if policy == domain.UpstreamFallback {
			slog.Warn("llm_fallback_to_deterministic", "error", err)
			return uc.deterministicResult(question, src), nil
		}
		return nil, domain.WrapError(domain.ErrLLMUpstream, "answer", err)
	}

	return &domain.AnswerResult{
		Mode:      domain.ModeAI,
		Answer:    answerText,
		Citations: extractCitations(answerText, src),
		Limits:    domain.Limits{UsedSources: src.Total()},
	}, nil
}

// deterministicResult builds citations directly from the top retrieved
// records with fixed caps, independent of the retrieval slot allocation.
func (uc *AnswerUseCase) deterministicResult(question string, src domain.RetrievedSources) *domain.AnswerResult {
	citations := make([]domain.Citation, 0, deterministicMaxDocs+deterministicMaxFaqs)
	for i, doc := range src.Documents {
		if i >= deterministicMaxDocs {
			break
		}
		citations = append(citations, documentCitation(doc))
	}
	for i, faq := range src.FaqEntries {
		if i >= deterministicMaxFaqs {
			break
		}
		citations = append(citations, faqCitation(faq))
	}
	if len(citations) > maxCitations {
		citations = citations[:maxCitations]
	}

	answer := fmt.Sprintf("Archive sources retrieved for: %q. Review the cited entries for detailed information.", question)
	if len(citations) == 0 {
		answer = fmt.Sprintf("Insufficient archive support for the query %q. Consider browsing the document archive or orientation FAQ.", question)
	}

	return &domain.AnswerResult{
		Mode:      domain.ModeDeterministic,
		Answer:    answer,
		Citations: citations,
		Limits:    domain.Limits{UsedSources: len(citations)},
	}
}
