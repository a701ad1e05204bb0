package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="1.5">Hello</text>
  <text start="1.5" dur="2">world</text>
  <text start="3.5" dur="1">it&amp;#39;s captions</text>
</transcript>`

func TestFetchReturnsSegments(t *testing.T) {
	var playerRequests int
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		playerRequests++
		require.Equal(t, http.MethodPost, r.Method)

		var req playerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "abc123XYZ9", req.VideoID)
		require.Equal(t, "ANDROID", req.Context.Client.ClientName)

		writePlayerResponse(w, fmt.Sprintf(`{
			"playabilityStatus": {"status": "OK"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": %q, "languageCode": "de", "kind": "asr"},
				{"baseUrl": %q, "languageCode": "en"}
			]}}
		}`, server.URL+"/timedtext?lang=de", server.URL+"/timedtext?lang=en"))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "en", r.URL.Query().Get("lang"))
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(timedTextXML))
	})

	client := NewClient(server.URL, time.Second)
	segments, err := client.Fetch(context.Background(), "abc123XYZ9", []string{"en"})
	require.NoError(t, err)
	require.Equal(t, 1, playerRequests)
	require.Equal(t, []transcript.Segment{
		{Text: "Hello", Start: 0, Duration: 1.5},
		{Text: "world", Start: 1.5, Duration: 2},
		{Text: "it's captions", Start: 3.5, Duration: 1},
	}, segments)
}

func TestFetchVideoUnavailable(t *testing.T) {
	client := newClientWithPlayerJSON(t, `{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`)

	_, err := client.Fetch(context.Background(), "gone", []string{"en"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "video_unavailable"))
	require.Contains(t, err.Error(), "unavailable")
}

func TestFetchTranscriptsDisabled(t *testing.T) {
	client := newClientWithPlayerJSON(t, `{"playabilityStatus": {"status": "OK"}}`)

	_, err := client.Fetch(context.Background(), "abc123XYZ9", []string{"en"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "transcripts_disabled"))
	require.Contains(t, err.Error(), "disabled")
}

func TestFetchNoCaptionTracks(t *testing.T) {
	client := newClientWithPlayerJSON(t, `{
		"playabilityStatus": {"status": "OK"},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": []}}
	}`)

	_, err := client.Fetch(context.Background(), "abc123XYZ9", []string{"en"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "no_transcript"))
	require.Contains(t, err.Error(), "captions")
}

func TestFetchUnexpectedPlayerStatus(t *testing.T) {
	client := newClientWithPlayerJSON(t, `{"playabilityStatus": {"status": "LOGIN_REQUIRED", "reason": "Sign in"}}`)

	_, err := client.Fetch(context.Background(), "abc123XYZ9", []string{"en"})
	require.Error(t, err)
	require.False(t, apperrors.IsCode(err, "video_unavailable"))
	require.Contains(t, err.Error(), "LOGIN_REQUIRED")
}

func TestFetchPlayerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "abc123XYZ9", []string{"en"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
}

func TestPickTrack(t *testing.T) {
	manualEN := captionTrack{BaseURL: "manual-en", LanguageCode: "en"}
	asrEN := captionTrack{BaseURL: "asr-en", LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{BaseURL: "manual-de", LanguageCode: "de"}

	require.Equal(t, manualEN, pickTrack([]captionTrack{asrEN, manualDE, manualEN}, []string{"en"}))
	require.Equal(t, asrEN, pickTrack([]captionTrack{manualDE, asrEN}, []string{"en"}))
	require.Equal(t, manualDE, pickTrack([]captionTrack{manualDE, manualEN}, []string{"de"}))
	// Falls back to English, then to the first track.
	require.Equal(t, asrEN, pickTrack([]captionTrack{manualDE, asrEN}, []string{"fr"}))
	require.Equal(t, manualDE, pickTrack([]captionTrack{manualDE}, []string{"fr"}))
}

func newClientWithPlayerJSON(t *testing.T, payload string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePlayerResponse(w, payload)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second)
}

func writePlayerResponse(w http.ResponseWriter, payload string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(payload))
}
