// Package captions fetches YouTube caption tracks through the Innertube
// /player endpoint and parses the referenced timedtext XML into segments.
package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	playerPath     = "/youtubei/v1/player"

	androidClientVersion = "19.09.37"
	androidUserAgent     = "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip"
)

// Client talks to the Innertube API with the ANDROID client context, which
// exposes caption track URLs without a logged-in session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a caption client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the ordered caption segments for a video. Typed failures are
// reported as AppError codes: transcripts_disabled when YouTube exposes no
// caption section, no_transcript when no usable track exists, and
// video_unavailable when the player rejects the video ID.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) ([]transcript.Segment, error) {
	player, err := c.fetchPlayer(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if status := player.PlayabilityStatus; status != nil && status.Status != "" && status.Status != "OK" {
		if status.Status == "ERROR" {
			return nil, apperrors.Wrap("video_unavailable", "Video is unavailable or does not exist", reasonError(status.Reason))
		}
		return nil, fmt.Errorf("player returned status %s: %s", status.Status, status.Reason)
	}

	if player.Captions == nil {
		return nil, apperrors.Wrap("transcripts_disabled", "Transcripts are disabled for this video", nil)
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, apperrors.Wrap("no_transcript", "No transcript found for this video. It may not have captions.", nil)
	}

	track := pickTrack(tracks, languages)
	segments, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *Client) fetchPlayer(ctx context.Context, videoID string) (*playerResponse, error) {
	body, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidClientVersion,
				AndroidSDKVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOK:    true,
		ContentCheckOK: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode player request: %w", err)
	}

	endpoint := c.baseURL + playerPath + "?prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidClientVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("player request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

func (c *Client) fetchTimedText(ctx context.Context, trackURL string) ([]transcript.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build timedtext request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext request error: status=%d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read timedtext response: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// Caption text arrives double-escaped (e.g. &amp;#39;).
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return segments, nil
}

// pickTrack prefers a manually authored track in a preferred language, then
// any preferred-language track, then English, then the first track.
func pickTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

func reasonError(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return nil
	}
	return fmt.Errorf("%s", reason)
}

type playerRequest struct {
	VideoID        string           `json:"videoId"`
	Context        innertubeContext `json:"context"`
	RacyCheckOK    bool             `json:"racyCheckOk"`
	ContentCheckOK bool             `json:"contentCheckOk"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

type playerResponse struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus"`
	Captions          *captionsSection   `json:"captions"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type captionsSection struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}
