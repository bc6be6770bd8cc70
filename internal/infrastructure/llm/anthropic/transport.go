package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Credential-shaped substrings are removed from any error text before it can
// reach a client-visible message.
var secretRE = regexp.MustCompile(`sk-[A-Za-z0-9_-]+`)

const maxErrorBodyChars = 200

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

func (c *Client) createMessage(ctx context.Context, system, user string) (string, error) {
	payload := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal messages request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create messages request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic messages request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", newHTTPStatusError(resp)
	}

	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode messages response: %w", err)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	body := redactSecrets(strings.TrimSpace(string(raw)))
	if runes := []rune(body); len(runes) > maxErrorBodyChars {
		body = string(runes[:maxErrorBodyChars])
	}
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}

func redactSecrets(s string) string {
	return secretRE.ReplaceAllString(s, "[REDACTED]")
}
