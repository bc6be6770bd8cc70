package usecase

import (
	"sort"

	"github.com/ambazonia-archive/archive-qa/internal/core/corpus"
	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

const defaultMaxSlots = 6

// Retriever selects and interleaves top-scoring documents and FAQ entries
// under a slot budget. It is pure and reentrant: the corpus is read-only.
type Retriever struct {
	corpus *corpus.Corpus
}

func NewRetriever(c *corpus.Corpus) *Retriever {
	return &Retriever{corpus: c}
}

type scoredDoc struct {
	doc   domain.Document
	score int
}

type scoredFaq struct {
	entry domain.FaqEntry
	score int
}

// Retrieve scores every record against the question and fills up to maxSlots
// sources. The top 2 documents and top 1 FAQ entry are reserved
// unconditionally so even narrow queries keep source diversity; remaining
// slots prefer documents. Returns empty sets when nothing scores above zero.
func (r *Retriever) Retrieve(question string, maxSlots int) domain.RetrievedSources {
	if maxSlots <= 0 {
		maxSlots = defaultMaxSlots
	}

	q := normalizeQuery(question)
	words := tokenize(q)
	years := queryYears(q)

	scoredDocs := make([]scoredDoc, 0)
	for _, doc := range r.corpus.Documents() {
		if s := scoreDocument(doc, q, words, years); s > 0 {
			scoredDocs = append(scoredDocs, scoredDoc{doc: doc, score: s})
		}
	}
	sort.SliceStable(scoredDocs, func(i, j int) bool {
		return scoredDocs[i].score > scoredDocs[j].score
	})

	scoredFaqs := make([]scoredFaq, 0)
	for _, entry := range r.corpus.FaqEntries() {
		if s := scoreFaq(entry, q, words); s > 0 {
			scoredFaqs = append(scoredFaqs, scoredFaq{entry: entry, score: s})
		}
	}
	sort.SliceStable(scoredFaqs, func(i, j int) bool {
		return scoredFaqs[i].score > scoredFaqs[j].score
	})

	docs := make([]domain.Document, 0, maxSlots)
	faqs := make([]domain.FaqEntry, 0, maxSlots)

	// Guarantee at least 2 documents and 1 FAQ entry when available.
	minDocs := min(2, len(scoredDocs))
	for i := 0; i < minDocs; i++ {
		docs = append(docs, scoredDocs[i].doc)
	}
	if len(scoredFaqs) > 0 {
		faqs = append(faqs, scoredFaqs[0].entry)
	}

	remaining := maxSlots - len(docs) - len(faqs)
	for i := minDocs; i < len(scoredDocs) && remaining > 0; i++ {
		docs = append(docs, scoredDocs[i].doc)
		remaining--
	}
	for i := 1; i < len(scoredFaqs) && remaining > 0; i++ {
		faqs = append(faqs, scoredFaqs[i].entry)
		remaining--
	}

	return domain.RetrievedSources{Documents: docs, FaqEntries: faqs}
}
