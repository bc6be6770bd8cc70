package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

// Corpus holds the archive's document and FAQ collections. It is built once
// at startup and never mutated afterwards, so lookups need no locking.
type Corpus struct {
	docs    []domain.Document
	faqs    []domain.FaqEntry
	docByID map[string]int
}

// New builds a corpus from already-decoded records. Document ids must be
// unique.
func New(docs []domain.Document, faqs []domain.FaqEntry) (*Corpus, error) {
	docByID := make(map[string]int, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("document at index %d has empty id", i)
		}
		if _, exists := docByID[doc.ID]; exists {
			return nil, fmt.Errorf("duplicate document id %q", doc.ID)
		}
		docByID[doc.ID] = i
	}
	return &Corpus{docs: docs, faqs: faqs, docByID: docByID}, nil
}

// Load reads the two corpus collections from JSON files.
func Load(documentsPath, faqPath string) (*Corpus, error) {
	var docsFile struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := decodeFile(documentsPath, &docsFile); err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	var faqFile struct {
		Entries []domain.FaqEntry `json:"entries"`
	}
	if err := decodeFile(faqPath, &faqFile); err != nil {
		return nil, fmt.Errorf("load faq entries: %w", err)
	}

	return New(docsFile.Documents, faqFile.Entries)
}

func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Documents returns the document collection. Callers must treat it as
// read-only.
func (c *Corpus) Documents() []domain.Document {
	return c.docs
}

// FaqEntries returns the FAQ collection. Callers must treat it as read-only.
func (c *Corpus) FaqEntries() []domain.FaqEntry {
	return c.faqs
}

func (c *Corpus) DocumentByID(id string) (domain.Document, bool) {
	idx, ok := c.docByID[id]
	if !ok {
		return domain.Document{}, false
	}
	return c.docs[idx], true
}
