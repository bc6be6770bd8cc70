package ports

import (
	"context"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

// AnswerGenerator produces a completion from the upstream chat model.
type AnswerGenerator interface {
	// Complete sends the system instruction and user prompt and returns the
	// assistant's text content.
	Complete(ctx context.Context, system, user string) (string, error)
	// Configured reports whether a credential is present. Callers must check
	// it before Complete so that the missing-credential state stays a
	// first-class configuration signal rather than a generic failure.
	Configured() bool
}

// QuestionAnswerer answers a free-text question against the archive corpus.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, mode domain.Mode, maxSources int, policy domain.UpstreamPolicy) (*domain.AnswerResult, error)
}

// RelatedDocumentsFinder ranks corpus documents related to a given document.
type RelatedDocumentsFinder interface {
	Related(docID string, limit int) ([]domain.Document, error)
}
