package domain

// Document is a primary-source archival record. The id is filename-derived
// and unique across the corpus; records are immutable after load.
type Document struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Year            string   `json:"year"`
	Category        string   `json:"category"`
	RelatedSections []string `json:"relatedSections,omitempty"`
}

// URL is the canonical site path for the document.
func (d Document) URL() string {
	return "/documents/" + d.ID
}

// FaqEntry is a curated question/answer unit. The three perspective fields
// are always present, possibly empty, to preserve the neutrality contract.
type FaqEntry struct {
	ID                   string   `json:"id"`
	Question             string   `json:"question"`
	ShortAnswer          string   `json:"shortAnswer"`
	DeepAnswer           []string `json:"deepAnswer"`
	AmbazoniaClaim       string   `json:"ambazoniaClaim"`
	CameroonPosition     string   `json:"cameroonPosition"`
	InternationalContext string   `json:"internationalContext"`
	RelatedDocuments     []string `json:"relatedDocuments"`
}

// URL is the canonical site anchor for the FAQ entry.
func (f FaqEntry) URL() string {
	return "/research/orientation#faq-" + f.ID
}
