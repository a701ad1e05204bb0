package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
)

// Service exposes transcript retrieval for a pasted video URL.
type Service interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// CaptionClient retrieves the ordered caption segments for a video. Typed
// failures arrive as AppError codes: transcripts_disabled, no_transcript and
// video_unavailable; anything else is treated as unexpected.
type CaptionClient interface {
	Fetch(ctx context.Context, videoID string, languages []string) ([]Segment, error)
}

// MetadataClient looks up oEmbed metadata for a video.
type MetadataClient interface {
	Fetch(ctx context.Context, videoID string) (Metadata, error)
}

// Config tunes the transcript domain.
type Config struct {
	Languages []string
}

type service struct {
	cfg      Config
	captions CaptionClient
	metadata MetadataClient
	logger   *slog.Logger
}

// NewService wires up the transcript domain.
func NewService(cfg Config, captions CaptionClient, metadata MetadataClient, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		captions: captions,
		metadata: metadata,
		logger:   logger.With("component", "transcript.service"),
	}
}

func (s *service) Fetch(ctx context.Context, req Request) (Response, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return Response{}, apperrors.Wrap("invalid_input", "URL is required", nil)
	}

	videoID, ok := ExtractVideoID(url)
	if !ok {
		return Response{}, apperrors.Wrap("invalid_url", "Invalid YouTube URL", nil)
	}

	segments, err := s.captions.Fetch(ctx, videoID, s.cfg.Languages)
	if err != nil {
		if isTyped(err) {
			return Response{}, err
		}
		return Response{}, apperrors.Wrap("transcript_error", "Failed to fetch transcript", err)
	}

	text := Flatten(segments)
	if text == "" {
		return Response{}, apperrors.Wrap("no_transcript", "No transcript found for this video. It may not have captions.", nil)
	}
	s.logger.Info("transcript fetched", "video_id", videoID, "segments", len(segments), "chars", len(text))

	return Response{
		Transcript: text,
		VideoID:    videoID,
		VideoInfo:  s.videoInfo(ctx, videoID),
	}, nil
}

// videoInfo never fails: any metadata lookup error degrades to placeholders.
// The thumbnail is derived from the video ID regardless of the call outcome.
func (s *service) videoInfo(ctx context.Context, videoID string) VideoInfo {
	info := VideoInfo{
		Title:     "Video",
		Channel:   "Unknown",
		Thumbnail: ThumbnailURL(videoID),
	}

	meta, err := s.metadata.Fetch(ctx, videoID)
	if err != nil {
		s.logger.Warn("video metadata lookup failed", "video_id", videoID, "error", err)
		return info
	}

	info.Title = firstNonEmpty(meta.Title, "Unknown Title")
	info.Channel = firstNonEmpty(meta.AuthorName, "Unknown Channel")
	return info
}

// Flatten joins segment texts in order with single spaces. Timing data is
// discarded; empty segments are skipped.
func Flatten(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// ThumbnailURL builds the deterministic thumbnail location for a video.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", videoID)
}

func isTyped(err error) bool {
	for _, code := range []string{"transcripts_disabled", "no_transcript", "video_unavailable"} {
		if apperrors.IsCode(err, code) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
