package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
)

const defaultBaseURL = "https://www.youtube.com"

// Client fetches video metadata from YouTube's oEmbed endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an oEmbed client. Callers treat every failure as
// best-effort; the client itself reports errors normally.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves title and channel for a video ID.
func (c *Client) Fetch(ctx context.Context, videoID string) (transcript.Metadata, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", c.baseURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return transcript.Metadata{}, fmt.Errorf("build oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transcript.Metadata{}, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return transcript.Metadata{}, fmt.Errorf("oembed request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return transcript.Metadata{}, fmt.Errorf("decode oembed response: %w", err)
	}

	return transcript.Metadata{
		Title:      raw.Title,
		AuthorName: raw.AuthorName,
	}, nil
}

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}
