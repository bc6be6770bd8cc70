package usecase

import (
	"fmt"
	"strings"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

const systemPrompt = `You are an institutional explainer for the Republic of Ambazonia Archive, a neutral historical and legal document repository.
Your sole task is to answer the user's question using ONLY the sources provided.
Rules:
- Every major paragraph must end with bracketed citations: [D:documentId] for documents, [F:faqId] for FAQ entries.
- If a claim cannot be supported by the provided sources, write exactly: "Not established in available sources."
- Maintain a calm, scholarly tone. No advocacy, no calls to action, no militant language, no glorification of any party.
- When the topic involves disputed history or legal status, clearly present three perspectives in sequence:
  (1) Ambazonian claim  (2) Cameroon position  (3) International context
- Do not fabricate URLs, quotes, or citations not derived from the sources listed.
- Keep the response under 1100 words.`

// buildPrompt renders the offered records into a source block with stable
// citation tags and combines it with the question into a single instruction.
func buildPrompt(question string, src domain.RetrievedSources) string {
	lines := make([]string, 0, src.Total())

	for _, doc := range src.Documents {
		lines = append(lines, fmt.Sprintf(
			"[D:%s] %q — year: %s, category: %s, url: %s",
			doc.ID, doc.Title, doc.Year, doc.Category, doc.URL(),
		))
	}

	for _, faq := range src.FaqEntries {
		var b strings.Builder
		fmt.Fprintf(&b, "[F:%s] %q\n", faq.ID, faq.Question)
		fmt.Fprintf(&b, "  Summary: %s\n", faq.ShortAnswer)
		for i, point := range faq.DeepAnswer {
			if i >= 2 {
				break
			}
			fmt.Fprintf(&b, "  — %s\n", point)
		}
		fmt.Fprintf(&b, "  Ambazonian claim: %s\n", faq.AmbazoniaClaim)
		fmt.Fprintf(&b, "  Cameroon position: %s\n", faq.CameroonPosition)
		fmt.Fprintf(&b, "  International context: %s", faq.InternationalContext)
		lines = append(lines, b.String())
	}

	return fmt.Sprintf(
		"Question: %s\n\nAvailable sources (use ONLY these):\n%s\n\nAnswer the question using only these sources. Cite every major paragraph with [D:id] or [F:id].",
		question, strings.Join(lines, "\n\n"),
	)
}
