package httpadapter

import (
	"net/http"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

// writeDomainError maps error kinds to statuses and stable machine-readable
// codes so clients can branch without string-matching. Configuration absence
// is an expected operational state and never escalates to 500.
func (rt *Router) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeErrorJSON(w, http.StatusBadRequest, err.Error(), "")
	case domain.IsKind(err, domain.ErrDocumentNotFound):
		writeErrorJSON(w, http.StatusNotFound, err.Error(), "")
	case domain.IsKind(err, domain.ErrLLMNotConfigured):
		if rt.metrics != nil {
			rt.metrics.RecordLLMFailure(serviceName, "not_configured")
		}
		writeErrorJSON(w, http.StatusServiceUnavailable,
			"AI mode is not configured on this deployment. LLM_API_KEY is not set.", "LLM_NOT_CONFIGURED")
	case domain.IsKind(err, domain.ErrLLMUpstream):
		if rt.metrics != nil {
			rt.metrics.RecordLLMFailure(serviceName, "upstream")
		}
		writeErrorJSON(w, http.StatusBadGateway, "LLM call failed: "+err.Error(), "LLM_ERROR")
	case domain.IsKind(err, domain.ErrTemporary):
		writeErrorJSON(w, http.StatusServiceUnavailable, err.Error(), "")
	default:
		writeErrorJSON(w, http.StatusInternalServerError, err.Error(), "")
	}
}
