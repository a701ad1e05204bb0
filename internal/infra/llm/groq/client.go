// Package groq constructs a chat completion client for the Groq API, which
// speaks the OpenAI wire protocol.
package groq

import (
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// NewClient builds a go-openai client pointed at Groq. An empty API key is
// allowed: the summary domain refuses to call out until one is configured.
func NewClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(base, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(cfg)
}
