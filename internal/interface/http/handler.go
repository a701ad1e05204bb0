package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourbr0ther/transcriptor/internal/domain/summary"
	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
	apperrors "github.com/yourbr0ther/transcriptor/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	transcriptSvc transcript.Service
	summarySvc    summary.Service
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(transcriptSvc transcript.Service, summarySvc summary.Service, logger *slog.Logger) *Handler {
	return &Handler{
		transcriptSvc: transcriptSvc,
		summarySvc:    summarySvc,
		logger:        logger.With("component", "http.handler"),
	}
}

// FetchTranscript handles the transcript retrieval endpoint.
func (h *Handler) FetchTranscript(c *gin.Context) {
	var req transcript.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.transcriptSvc.Fetch(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "transcript_error"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_input"
		case apperrors.IsCode(err, "invalid_url"):
			status = http.StatusBadRequest
			code = "invalid_url"
		case apperrors.IsCode(err, "transcripts_disabled"):
			status = http.StatusBadRequest
			code = "transcripts_disabled"
		case apperrors.IsCode(err, "no_transcript"):
			status = http.StatusBadRequest
			code = "no_transcript"
		case apperrors.IsCode(err, "video_unavailable"):
			status = http.StatusBadRequest
			code = "video_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Summarize handles the transcript summarization endpoint.
func (h *Handler) Summarize(c *gin.Context) {
	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.summarySvc.Summarize(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "summary_error"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_input"
		case apperrors.IsCode(err, "missing_api_key"):
			code = "missing_api_key"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
