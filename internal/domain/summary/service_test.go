package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
)

func TestSummarizeCallsGroq(t *testing.T) {
	client := &stubChatClient{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "a structured summary"}},
			},
			Usage: openai.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		},
	}
	svc := NewService(testConfig(), client, newTestLogger())

	resp, err := svc.Summarize(context.Background(), Request{Transcript: "people talking about go", Title: "Go Talk"})
	require.NoError(t, err)
	require.Equal(t, "a structured summary", resp.Summary)
	require.NotNil(t, resp.TokenUsage)
	require.Equal(t, 150, resp.TokenUsage.TotalTokens)

	req := client.lastRequest
	require.Equal(t, "llama-3.1-70b-versatile", req.Model)
	require.InDelta(t, 0.3, req.Temperature, 0.001)
	require.Equal(t, 1500, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	require.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	require.Contains(t, req.Messages[0].Content, "concise but comprehensive")
	require.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	require.Contains(t, req.Messages[1].Content, "Video Title: Go Talk")
	require.Contains(t, req.Messages[1].Content, "people talking about go")
	require.Contains(t, req.Messages[1].Content, "Key Points")
	require.Contains(t, req.Messages[1].Content, "Main Topics")
}

func TestSummarizeRequiresTranscript(t *testing.T) {
	svc := NewService(testConfig(), &stubChatClient{}, newTestLogger())

	_, err := svc.Summarize(context.Background(), Request{Transcript: "  "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Equal(t, "Transcript is required", err.Error())
}

func TestSummarizeRequiresAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	svc := NewService(cfg, &stubChatClient{}, newTestLogger())

	_, err := svc.Summarize(context.Background(), Request{Transcript: "anything"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "missing_api_key"))
	require.Equal(t, "Groq API key not configured", err.Error())
}

func TestSummarizeWrapsUpstreamFailure(t *testing.T) {
	client := &stubChatClient{err: errors.New("quota exceeded")}
	svc := NewService(testConfig(), client, newTestLogger())

	_, err := svc.Summarize(context.Background(), Request{Transcript: "anything"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "summary_error"))
	require.Equal(t, "Failed to generate summary: quota exceeded", err.Error())
}

func TestSummarizeRejectsEmptyChoices(t *testing.T) {
	client := &stubChatClient{resp: openai.ChatCompletionResponse{}}
	svc := NewService(testConfig(), client, newTestLogger())

	_, err := svc.Summarize(context.Background(), Request{Transcript: "anything"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "summary_error"))
}

func TestSummarizeTruncatesLongTranscripts(t *testing.T) {
	client := &stubChatClient{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "ok"}},
			},
		},
	}
	cfg := testConfig()
	svc := NewService(cfg, client, newTestLogger())

	long := strings.Repeat("x", cfg.MaxTranscriptChars+500)
	_, err := svc.Summarize(context.Background(), Request{Transcript: long})
	require.NoError(t, err)

	prompt := client.lastRequest.Messages[1].Content
	require.Contains(t, prompt, strings.Repeat("x", cfg.MaxTranscriptChars)+"...")
	require.NotContains(t, prompt, strings.Repeat("x", cfg.MaxTranscriptChars+1))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 30000))
	exact := strings.Repeat("a", 100)
	require.Equal(t, exact, Truncate(exact, 100))

	long := strings.Repeat("a", 101)
	got := Truncate(long, 100)
	require.Len(t, got, 103)
	require.Equal(t, strings.Repeat("a", 100)+"...", got)
}

func TestTruncateCountsCharactersNotBytes(t *testing.T) {
	// Multibyte runes: the limit applies to characters and the cut must not
	// split a rune.
	exact := strings.Repeat("é", 100)
	require.Equal(t, exact, Truncate(exact, 100))

	got := Truncate("a"+strings.Repeat("é", 30000), 30000)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "a"+strings.Repeat("é", 29999)+"...", got)
	require.Equal(t, 30003, utf8.RuneCountInString(got))
}

func testConfig() Config {
	return Config{
		APIKey:             "test-key",
		Model:              "llama-3.1-70b-versatile",
		Temperature:        0.3,
		MaxTokens:          1500,
		MaxTranscriptChars: 30000,
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubChatClient struct {
	resp        openai.ChatCompletionResponse
	err         error
	lastRequest openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastRequest = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return s.resp, nil
}
