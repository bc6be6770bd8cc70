package usecase

import (
	"fmt"
	"regexp"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

const (
	maxCitations  = 8
	maxQuoteChars = 240
)

var citationTagRE = regexp.MustCompile(`\[([DF]):([^\]]{1,120})\]`)

// extractCitations scans the answer text for [D:<id>] and [F:<id>] tags in
// order of first appearance, de-duplicating by kind and id, capped at
// maxCitations. Tags resolve only against the records actually offered to
// the model; unresolvable ids are dropped silently, since the model may emit
// a malformed or stale tag.
func extractCitations(answer string, src domain.RetrievedSources) []domain.Citation {
	docByID := make(map[string]domain.Document, len(src.Documents))
	for _, doc := range src.Documents {
		docByID[doc.ID] = doc
	}
	faqByID := make(map[string]domain.FaqEntry, len(src.FaqEntries))
	for _, faq := range src.FaqEntries {
		faqByID[faq.ID] = faq
	}

	seen := make(map[string]bool)
	citations := make([]domain.Citation, 0, maxCitations)

	for _, m := range citationTagRE.FindAllStringSubmatch(answer, -1) {
		if len(citations) >= maxCitations {
			break
		}
		kind, id := m[1], m[2]
		key := kind + ":" + id
		if seen[key] {
			continue
		}
		seen[key] = true

		switch kind {
		case "D":
			if doc, ok := docByID[id]; ok {
				citations = append(citations, documentCitation(doc))
			}
		case "F":
			if faq, ok := faqByID[id]; ok {
				citations = append(citations, faqCitation(faq))
			}
		}
	}

	return citations
}

func documentCitation(doc domain.Document) domain.Citation {
	return domain.Citation{
		Type:  domain.CitationDocument,
		ID:    doc.ID,
		Title: doc.Title,
		URL:   doc.URL(),
		Quote: truncateRunes(doc.Title, maxQuoteChars),
		Why:   fmt.Sprintf("%s document (%s)", doc.Category, doc.Year),
	}
}

func faqCitation(faq domain.FaqEntry) domain.Citation {
	return domain.Citation{
		Type:  domain.CitationFaq,
		ID:    faq.ID,
		Title: faq.Question,
		URL:   faq.URL(),
		Quote: truncateRunes(faq.ShortAnswer, maxQuoteChars),
		Why:   "Orientation FAQ entry",
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
