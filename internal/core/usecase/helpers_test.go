package usecase

import (
	"context"
	"testing"

	"github.com/ambazonia-archive/archive-qa/internal/core/corpus"
	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:              "1961-plebiscite-results",
			Title:           "Results of the 11 February 1961 Plebiscite",
			Year:            "1961",
			Category:        "un",
			RelatedSections: []string{"plebiscite", "un"},
		},
		{
			ID:              "foumban-conference-minutes",
			Title:           "Minutes of the Foumban Constitutional Conference",
			Year:            "1961",
			Category:        "historical",
			RelatedSections: []string{"federation"},
		},
		{
			ID:              "federal-constitution-1961",
			Title:           "Federal Constitution of Cameroon 1961",
			Year:            "1961",
			Category:        "constitutional",
			RelatedSections: []string{"federation", "plebiscite"},
		},
		{
			ID:       "scnc-declaration",
			Title:    "SCNC Proclamation of Independence",
			Year:     "1999",
			Category: "historical",
		},
	}
}

func testFaqEntries() []domain.FaqEntry {
	return []domain.FaqEntry{
		{
			ID:          "what-is-scnc",
			Question:    "What is the SCNC?",
			ShortAnswer: "The Southern Cameroons National Council (SCNC) is a political organisation formed in the 1990s.",
			DeepAnswer: []string{
				"Formed after the All Anglophone Conference.",
				"Advocates through non-violent means.",
				"Declared symbolic independence in 1999.",
			},
			AmbazoniaClaim:       "Seen as a legitimate restorationist movement.",
			CameroonPosition:     "Considered an illegal secessionist group.",
			InternationalContext: "Largely treated as a civil-society actor.",
			RelatedDocuments:     []string{"scnc-declaration"},
		},
		{
			ID:                   "plebiscite-1961",
			Question:             "What happened in the 1961 plebiscite?",
			ShortAnswer:          "A UN-supervised plebiscite decided the future of the British Cameroons.",
			DeepAnswer:           []string{"Two questions were put to voters.", "Southern Cameroons voted to join Cameroun."},
			AmbazoniaClaim:       "The options offered excluded full independence.",
			CameroonPosition:     "The vote settled the territory's status definitively.",
			InternationalContext: "The UN General Assembly endorsed the result.",
		},
	}
}

func newTestCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New(testDocuments(), testFaqEntries())
	if err != nil {
		t.Fatalf("corpus.New() error = %v", err)
	}
	return c
}

// fakeGenerator satisfies ports.AnswerGenerator for usecase tests.
type fakeGenerator struct {
	configured bool
	text       string
	err        error

	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeGenerator) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) Configured() bool {
	return f.configured
}
