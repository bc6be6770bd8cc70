package httpadapter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

// relatedDocuments serves GET /v1/documents/{document_id}/related.
func (rt *Router) relatedDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, ok := strings.CutSuffix(rest, "/related")
	if !ok || id == "" || strings.Contains(id, "/") {
		writeErrorJSON(w, http.StatusNotFound, "not found", "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	docs, err := rt.related.Related(id, limit)
	if err != nil {
		rt.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Document{"documents": docs})
}
