package anthropic

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ambazonia-archive/archive-qa/internal/infrastructure/resilience"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 1800
	defaultTimeout   = 30 * time.Second

	apiVersion = "2023-06-01"
)

type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	// Timeout bounds a single Messages call; an unbounded hang would tie up
	// an in-flight request slot indefinitely.
	Timeout time.Duration
	// RequestsPerSecond paces outbound calls; zero disables pacing.
	RequestsPerSecond float64

	Resilience resilience.Config
}

// Client talks to the Anthropic Messages API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	pacer      *rate.Limiter
	exec       *resilience.Executor
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var pacer *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		pacer = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 2)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		pacer:      pacer,
		exec:       resilience.NewExecutor("anthropic_messages", cfg.Resilience, classifyError),
	}
}

// Configured reports whether an API credential is present. Its absence is an
// expected operational state, surfaced to callers as a distinct signal.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends the system instruction and user prompt and returns the
// first text content block of the assistant reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return "", err
		}
	}

	var text string
	err := c.exec.Execute(ctx, func(ctx context.Context) error {
		reply, err := c.createMessage(ctx, system, user)
		if err != nil {
			return err
		}
		text = reply
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
