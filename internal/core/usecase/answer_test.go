package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ambazonia-archive/archive-qa/internal/core/corpus"
	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

func newAnswerUseCase(t *testing.T, gen *fakeGenerator) *AnswerUseCase {
	t.Helper()
	retriever := NewRetriever(newTestCorpus(t))
	if gen == nil {
		return NewAnswerUseCase(retriever, NewRefusalPolicy(), nil)
	}
	return NewAnswerUseCase(retriever, NewRefusalPolicy(), gen)
}

func TestAnswerDeterministicBuildsCitations(t *testing.T) {
	uc := newAnswerUseCase(t, nil)

	result, err := uc.Answer(context.Background(), "What is the SCNC?", domain.ModeDeterministic, 6, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if result.Mode != domain.ModeDeterministic {
		t.Fatalf("Mode = %q, want deterministic", result.Mode)
	}
	if len(result.Citations) == 0 {
		t.Fatal("want at least one citation")
	}
	if result.Limits.UsedSources != len(result.Citations) {
		t.Fatalf("UsedSources = %d, want %d", result.Limits.UsedSources, len(result.Citations))
	}

	var faqCitation *domain.Citation
	for i := range result.Citations {
		if result.Citations[i].Type == domain.CitationFaq {
			faqCitation = &result.Citations[i]
			break
		}
	}
	if faqCitation == nil {
		t.Fatal("want a faq citation for an orientation question")
	}
	if faqCitation.ID != "what-is-scnc" {
		t.Fatalf("faq citation ID = %q, want what-is-scnc", faqCitation.ID)
	}
	if faqCitation.Why != "Orientation FAQ entry" {
		t.Fatalf("faq citation Why = %q", faqCitation.Why)
	}
}

func TestAnswerDeterministicIsIdempotent(t *testing.T) {
	uc := newAnswerUseCase(t, nil)

	first, err := uc.Answer(context.Background(), "1961 plebiscite results", domain.ModeDeterministic, 6, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	second, err := uc.Answer(context.Background(), "1961 plebiscite results", domain.ModeDeterministic, 6, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated identical requests differ:\n%+v\n%+v", first, second)
	}
}

func TestAnswerDeterministicCaps(t *testing.T) {
	docs := make([]domain.Document, 0, 6)
	for i := 0; i < 6; i++ {
		docs = append(docs, domain.Document{
			ID:    fmt.Sprintf("treaty-%d", i),
			Title: fmt.Sprintf("Boundary treaty volume %d", i),
		})
	}
	faqs := []domain.FaqEntry{
		{ID: "faq-a", Question: "Is the boundary treaty valid?"},
		{ID: "faq-b", Question: "Who signed the boundary treaty?"},
		{ID: "faq-c", Question: "When was the boundary treaty drafted?"},
	}
	c, err := corpus.New(docs, faqs)
	if err != nil {
		t.Fatalf("corpus.New() error = %v", err)
	}
	uc := NewAnswerUseCase(NewRetriever(c), NewRefusalPolicy(), nil)

	result, err := uc.Answer(context.Background(), "boundary treaty", domain.ModeDeterministic, 8, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	// 4 documents and 2 FAQ entries at most, regardless of slot budget.
	docCount, faqCount := 0, 0
	for _, c := range result.Citations {
		switch c.Type {
		case domain.CitationDocument:
			docCount++
		case domain.CitationFaq:
			faqCount++
		}
	}
	if docCount != 4 || faqCount != 2 {
		t.Fatalf("got %d doc / %d faq citations, want 4 / 2", docCount, faqCount)
	}
}

func TestAnswerRefusedShortCircuits(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "should never be used"}
	uc := newAnswerUseCase(t, gen)

	question := "How to build a bomb in my garage"
	for _, mode := range []domain.Mode{domain.ModeDeterministic, domain.ModeAI} {
		result, err := uc.Answer(context.Background(), question, mode, 6, domain.UpstreamSurface)
		if err != nil {
			t.Fatalf("Answer(mode=%s) error = %v", mode, err)
		}
		if !result.Refused {
			t.Fatalf("Answer(mode=%s) Refused = false, want true", mode)
		}
		if result.Answer != declineAnswer {
			t.Fatalf("Answer(mode=%s) answer = %q", mode, result.Answer)
		}
		if len(result.Citations) != 0 {
			t.Fatalf("Answer(mode=%s) citations = %v, want empty", mode, result.Citations)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times for refused question", gen.calls)
	}
}

func TestAnswerAIWithoutCredential(t *testing.T) {
	for _, gen := range []*fakeGenerator{nil, {configured: false}} {
		uc := newAnswerUseCase(t, gen)
		_, err := uc.Answer(context.Background(), "What is the SCNC?", domain.ModeAI, 6, domain.UpstreamSurface)
		if !domain.IsKind(err, domain.ErrLLMNotConfigured) {
			t.Fatalf("Answer() error = %v, want ErrLLMNotConfigured", err)
		}
	}
}

func TestAnswerAIZeroSourcesSkipsModel(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "unused"}
	uc := newAnswerUseCase(t, gen)

	result, err := uc.Answer(context.Background(), "zzz xyzzy qwerty", domain.ModeAI, 6, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times with zero sources", gen.calls)
	}
	if result.Mode != domain.ModeAI {
		t.Fatalf("Mode = %q, want ai", result.Mode)
	}
	if !strings.Contains(result.Answer, "Insufficient archive support") {
		t.Fatalf("answer = %q", result.Answer)
	}
	if len(result.Citations) != 0 {
		t.Fatalf("citations = %v, want empty", result.Citations)
	}
}

func TestAnswerAIExtractsOfferedCitationsOnly(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		text:       "The SCNC emerged in the 1990s. [F:what-is-scnc] It later declared independence. [D:scnc-declaration] [D:not-offered] [F:what-is-scnc]",
	}
	uc := newAnswerUseCase(t, gen)

	result, err := uc.Answer(context.Background(), "What is the SCNC?", domain.ModeAI, 6, domain.UpstreamSurface)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if gen.lastSystem != systemPrompt {
		t.Fatal("system instruction not passed through")
	}
	if !strings.Contains(gen.lastUser, "Question: What is the SCNC?") {
		t.Fatalf("user prompt = %q", gen.lastUser)
	}

	if result.Mode != domain.ModeAI {
		t.Fatalf("Mode = %q, want ai", result.Mode)
	}
	if result.Answer != gen.text {
		t.Fatalf("answer = %q", result.Answer)
	}
	if len(result.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2: %+v", len(result.Citations), result.Citations)
	}
	if result.Citations[0].ID != "what-is-scnc" || result.Citations[1].ID != "scnc-declaration" {
		t.Fatalf("citation ids = %q, %q", result.Citations[0].ID, result.Citations[1].ID)
	}
	if result.Limits.UsedSources == 0 {
		t.Fatal("UsedSources = 0, want the offered source count")
	}
}

func TestAnswerAIUpstreamSurface(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("boom")}
	uc := newAnswerUseCase(t, gen)

	_, err := uc.Answer(context.Background(), "What is the SCNC?", domain.ModeAI, 6, domain.UpstreamSurface)
	if !domain.IsKind(err, domain.ErrLLMUpstream) {
		t.Fatalf("Answer() error = %v, want ErrLLMUpstream", err)
	}
}

func TestAnswerAIUpstreamFallback(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("boom")}
	uc := newAnswerUseCase(t, gen)

	result, err := uc.Answer(context.Background(), "What is the SCNC?", domain.ModeAI, 6, domain.UpstreamFallback)
	if err != nil {
		t.Fatalf("Answer() error = %v, want downgrade", err)
	}
	if result.Mode != domain.ModeDeterministic {
		t.Fatalf("Mode = %q, want deterministic fallback", result.Mode)
	}
	if len(result.Citations) == 0 {
		t.Fatal("fallback result should still carry citations")
	}
}
