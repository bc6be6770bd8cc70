package usecase

import (
	"regexp"
	"strings"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

// Domain key terms acting as a keyword proxy for the archive's subject
// matter. Matching one in both the query and a record is a strong signal.
var keyTerms = []string{
	"1961", "plebiscite", "trusteeship", "scnc", "independence", "federation",
	"anglophone", "foumban", "gorji", "dinka", "ambazonia", "cameroon",
	"secession", "referendum", "mandate", "decolonisation", "sovereignty",
}

var categoryTerms = []string{"historical", "legal", "un", "diplomatic", "constitutional"}

var (
	yearRE    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	nonWordRE = regexp.MustCompile(`[^\w\s]`)
	spacesRE  = regexp.MustCompile(`\s+`)
)

// normalizeQuery lowercases, strips punctuation, collapses whitespace and
// trims the question so scoring sees a canonical form.
func normalizeQuery(question string) string {
	q := strings.ToLower(question)
	q = nonWordRE.ReplaceAllString(q, " ")
	q = spacesRE.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// tokenize splits a normalized query into distinct tokens of at least three
// characters, preserving first-occurrence order.
func tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		tokens = append(tokens, w)
	}
	return tokens
}

func queryYears(normalized string) []string {
	return yearRE.FindAllString(normalized, -1)
}

// scoreDocument computes the additive relevance score of a document for a
// normalized query. Sub-scores are capped so no single heuristic dominates.
func scoreDocument(doc domain.Document, q string, words []string, years []string) int {
	title := strings.ToLower(doc.Title)
	score := 0

	// Exact phrase match in title: +8
	if q != "" && strings.Contains(title, q) {
		score += 8
	}

	// Word overlap in title: +1 per token, cap 10
	wordHits := 0
	for _, w := range words {
		if strings.Contains(title, w) {
			wordHits++
		}
	}
	score += min(wordHits, 10)

	// Year match: +2
	for _, y := range years {
		if doc.Year == y {
			score += 2
			break
		}
	}

	// Category match: +2, first match only
	category := strings.ToLower(doc.Category)
	for _, cat := range categoryTerms {
		if strings.Contains(q, cat) && strings.Contains(category, cat) {
			score += 2
			break
		}
	}

	// Key-term overlap: +1 per term, cap 6
	keyHits := 0
	for _, term := range keyTerms {
		if strings.Contains(q, term) && strings.Contains(title, term) {
			keyHits++
		}
	}
	score += min(keyHits, 6)

	return score
}

// scoreFaq computes the additive relevance score of a FAQ entry for a
// normalized query.
func scoreFaq(entry domain.FaqEntry, q string, words []string) int {
	question := strings.ToLower(entry.Question)
	short := strings.ToLower(entry.ShortAnswer)
	score := 0

	// Exact phrase in question: +8
	if q != "" && strings.Contains(question, q) {
		score += 8
	}

	// Word overlap in question: +1 per token, cap 10
	questionHits := 0
	for _, w := range words {
		if strings.Contains(question, w) {
			questionHits++
		}
	}
	score += min(questionHits, 10)

	// Word overlap in short answer: +1 per token, cap 6
	shortHits := 0
	for _, w := range words {
		if strings.Contains(short, w) {
			shortHits++
		}
	}
	score += min(shortHits, 6)

	// Key-term bonus: +3 per matching term
	for _, term := range keyTerms {
		if strings.Contains(q, term) && (strings.Contains(question, term) || strings.Contains(short, term)) {
			score += 3
		}
	}

	return score
}
