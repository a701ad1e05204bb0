package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
	"github.com/yourbr0ther/transcriptor/pkg/metrics"
)

const systemPrompt = "You are a helpful assistant that summarizes YouTube video transcripts. Be concise but comprehensive. Use clear formatting."

const userPromptTemplate = `Please provide a comprehensive yet concise summary of the following YouTube video transcript.

Video Title: %s

Structure your summary as follows:
📌 **Key Points** - The main takeaways (3-5 bullet points)
📝 **Summary** - A brief paragraph summarizing the content
🎯 **Main Topics** - List the key topics discussed

Transcript:
%s

Provide a clear, well-organized summary that captures the essence of the video.`

// truncationMarker is appended when the transcript exceeds the input limit.
const truncationMarker = "..."

// Service exposes transcript summarization.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

// ChatClient matches the completion method of the go-openai client so the
// real Groq-backed client binds directly and tests substitute a stub.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type service struct {
	cfg    Config
	client ChatClient
	logger *slog.Logger

	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
}

// NewService wires up the summary domain.
func NewService(cfg Config, client ChatClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "summary.service")}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return Response{}, apperrors.Wrap("invalid_input", "Transcript is required", nil)
	}
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return Response{}, apperrors.Wrap("missing_api_key", "Groq API key not configured", nil)
	}

	transcript := Truncate(req.Transcript, s.cfg.MaxTranscriptChars)
	prompt := buildPrompt(req.Title, transcript)
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		s.logger.Debug("summary prompt built",
			"transcript_chars", len(transcript),
			"truncated", len(transcript) != len(req.Transcript),
			"prompt_tokens_estimate", s.estimateTokens(prompt))
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return Response{}, apperrors.Wrap("summary_error", "Failed to generate summary", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, apperrors.Wrap("summary_error", "Failed to generate summary", fmt.Errorf("no completion choices returned"))
	}

	out := Response{Summary: resp.Choices[0].Message.Content}
	if usage := toTokenUsage(resp.Usage); !usage.IsZero() {
		out.TokenUsage = &usage
	}
	s.logger.Info("summary generated", "summary_chars", len(out.Summary), "total_tokens", resp.Usage.TotalTokens)
	return out, nil
}

func buildPrompt(title, transcript string) string {
	return fmt.Sprintf(userPromptTemplate, title, transcript)
}

// Truncate caps the transcript at max characters and appends the truncation
// marker. The cut is made on a rune boundary so non-ASCII captions stay valid
// UTF-8. Inputs at or under the limit pass through unmodified.
func Truncate(transcript string, max int) string {
	if max <= 0 || utf8.RuneCountInString(transcript) <= max {
		return transcript
	}
	runes := []rune(transcript)
	return string(runes[:max]) + truncationMarker
}

// estimateTokens is best effort; the encoder download can fail offline and
// the estimate is only logged.
func (s *service) estimateTokens(prompt string) int {
	s.encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			s.logger.Debug("token encoder unavailable", "error", err)
			return
		}
		s.encoder = enc
	})
	if s.encoder == nil {
		return 0
	}
	return len(s.encoder.Encode(prompt, nil, nil))
}

func toTokenUsage(usage openai.Usage) metrics.TokenUsage {
	return metrics.TokenUsage{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}
