package summary

import "github.com/yourbr0ther/transcriptor/pkg/metrics"

// Config configures the summary domain.
type Config struct {
	APIKey             string
	Model              string
	Temperature        float32
	MaxTokens          int
	MaxTranscriptChars int
}

// Request represents the incoming summarization payload.
type Request struct {
	Transcript string `json:"transcript"`
	Title      string `json:"title,omitempty"`
}

// Response is returned by the summarize endpoint.
type Response struct {
	Summary    string              `json:"summary"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
