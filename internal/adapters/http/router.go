package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/ambazonia-archive/archive-qa/internal/config"
	"github.com/ambazonia-archive/archive-qa/internal/core/ports"
	"github.com/ambazonia-archive/archive-qa/internal/infrastructure/ratelimit"
	"github.com/ambazonia-archive/archive-qa/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	answerer ports.QuestionAnswerer
	related  ports.RelatedDocumentsFinder
	limiter  *ratelimit.Limiter
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	answerer ports.QuestionAnswerer,
	related ports.RelatedDocumentsFinder,
	limiter *ratelimit.Limiter,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		answerer: answerer,
		related:  related,
		limiter:  limiter,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/chat", rt.chat)
	mux.HandleFunc("/v1/documents/", rt.relatedDocuments)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON emits the payload with permissive CORS headers; the endpoint is
// consumed cross-origin by the static site.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	setCORSHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErrorJSON(w http.ResponseWriter, status int, message, code string) {
	payload := map[string]string{"error": message}
	if code != "" {
		payload["code"] = code
	}
	writeJSON(w, status, payload)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
