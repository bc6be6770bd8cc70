package domain

// Mode selects how the answer is synthesized.
type Mode string

const (
	ModeDeterministic Mode = "deterministic"
	ModeAI            Mode = "ai"
)

// UpstreamPolicy decides what happens when the upstream LLM call fails:
// the HTTP API surfaces an explicit error, a same-process caller may prefer
// a silent downgrade to the deterministic answer.
type UpstreamPolicy string

const (
	UpstreamSurface  UpstreamPolicy = "surface"
	UpstreamFallback UpstreamPolicy = "fallback"
)

// CitationType tags a citation as a document or FAQ source.
type CitationType string

const (
	CitationDocument CitationType = "document"
	CitationFaq      CitationType = "faq"
)

// Citation is a response-scoped value derived from a retrieved record.
type Citation struct {
	Type  CitationType `json:"type"`
	ID    string       `json:"id"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Quote string       `json:"quote"`
	Why   string       `json:"why"`
}

// RetrievedSources is the set of records offered to the synthesizer.
type RetrievedSources struct {
	Documents  []Document
	FaqEntries []FaqEntry
}

func (s RetrievedSources) Total() int {
	return len(s.Documents) + len(s.FaqEntries)
}

// Limits reports how many sources were made available to the synthesizer.
type Limits struct {
	UsedSources int `json:"usedSources"`
}

// AnswerResult is the endpoint response body. Refused is response metadata
// for callers (observability), not part of the wire contract.
type AnswerResult struct {
	Mode      Mode       `json:"mode"`
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Limits    Limits     `json:"limits"`
	Refused   bool       `json:"-"`
}
