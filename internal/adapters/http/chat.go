package httpadapter

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ambazonia-archive/archive-qa/internal/core/domain"
)

const (
	maxQuestionChars = 500
	minSourceSlots   = 1
	maxSourceSlots   = 8
	maxBodyBytes     = 1 << 20
)

type chatRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode"`
	// Raw so a non-numeric value falls back to the default instead of
	// failing the whole decode.
	MaxSources json.RawMessage `json:"maxSources"`
}

// chat drives the request state machine: admission, parsing, validation,
// refusal, retrieval and mode dispatch. Every exit is terminal; nothing is
// retried.
func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		setCORSHeaders(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	allowed, retryAfter := rt.limiter.Allow(clientKey(r))
	if !allowed {
		if rt.metrics != nil {
			rt.metrics.RecordRateLimited(serviceName)
		}
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		writeErrorJSON(w, http.StatusTooManyRequests, "Rate limit exceeded. Please wait before retrying.", "RATE_LIMITED")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "question must be a non-empty string", "")
		return
	}
	question := strings.TrimSpace(truncateRunes(req.Question, maxQuestionChars))

	mode := domain.ModeDeterministic
	switch req.Mode {
	case "", string(domain.ModeDeterministic):
	case string(domain.ModeAI):
		mode = domain.ModeAI
	default:
		writeErrorJSON(w, http.StatusBadRequest, `mode must be "deterministic" or "ai"`, "")
		return
	}

	maxSources := rt.clampMaxSources(req.MaxSources)

	start := time.Now()
	result, err := rt.answerer.Answer(r.Context(), question, mode, maxSources, domain.UpstreamSurface)
	if err != nil {
		rt.writeDomainError(w, err)
		return
	}

	if rt.metrics != nil {
		if result.Refused {
			rt.metrics.RecordRefusal(serviceName)
		}
		rt.metrics.RecordChat(serviceName, string(result.Mode), result.Limits.UsedSources, time.Since(start))
	}
	writeJSON(w, http.StatusOK, result)
}

// clampMaxSources floors the requested slot budget into [1,8]; absent or
// non-numeric values get the configured default.
func (rt *Router) clampMaxSources(raw json.RawMessage) int {
	fallback := rt.cfg.DefaultMaxSources
	if fallback <= 0 {
		fallback = 6
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}
	n := int(math.Floor(value))
	if n < minSourceSlots {
		n = minSourceSlots
	}
	if n > maxSourceSlots {
		n = maxSourceSlots
	}
	return n
}

// clientKey derives the rate-limit key from the proxy-supplied forwarded
// address. When the header is missing the limiter degrades to one shared
// bucket, an accepted weakness of the advisory limiter.
func clientKey(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if first, _, found := strings.Cut(forwarded, ","); found || forwarded != "" {
		if key := strings.TrimSpace(first); key != "" {
			return key
		}
	}
	return "unknown"
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
