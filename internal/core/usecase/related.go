package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ambazonia-archive/archive-qa/internal/core/corpus"
	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

const defaultRelatedLimit = 3

// RelatedUseCase ranks corpus documents by similarity to a source document.
type RelatedUseCase struct {
	corpus *corpus.Corpus
}

func NewRelatedUseCase(c *corpus.Corpus) *RelatedUseCase {
	return &RelatedUseCase{corpus: c}
}

// Related returns up to limit documents most related to docID. Order is
// fully deterministic: score descending, then document id ascending. Only
// documents with a positive score are returned.
func (uc *RelatedUseCase) Related(docID string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	source, ok := uc.corpus.DocumentByID(docID)
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "related", fmt.Errorf("id=%s", docID))
	}

	scored := make([]scoredDoc, 0)
	for _, candidate := range uc.corpus.Documents() {
		if candidate.ID == docID {
			continue
		}
		if s := scoreRelated(source, candidate); s > 0 {
			scored = append(scored, scoredDoc{doc: candidate, score: s})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].doc.ID < scored[j].doc.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]domain.Document, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.doc)
	}
	return out, nil
}

func scoreRelated(source, candidate domain.Document) int {
	score := 0

	if source.Category == candidate.Category {
		score += 5
	}

	for _, kw := range source.RelatedSections {
		for _, other := range candidate.RelatedSections {
			if kw == other {
				score += 3
				break
			}
		}
	}

	if source.Year != "" && candidate.Year != "" && source.Year == candidate.Year {
		score += 2
	}

	candidateTitle := strings.ToLower(candidate.Title)
	for _, w := range strings.Fields(strings.ToLower(source.Title)) {
		if len(w) > 3 && strings.Contains(candidateTitle, w) {
			score++
		}
	}

	return score
}
