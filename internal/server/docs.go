package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
	"github.com/campuspal/schedule-assistant/internal/sentry"
)

// SummarizeDocument accepts a multipart upload under the "document"
// field and returns an LLM-written summary of it.
func (h *Handler) SummarizeDocument(c *gin.Context) {
	if h.summarizer == nil || !h.summarizer.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Summarization requires a configured LLM provider"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	fileHeader, err := c.FormFile("document")
	if err != nil {
		h.metrics.RecordHTTPError("bad_request", "/api/documents/summarize")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing document upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return
	}
	defer func() { _ = file.Close() }()

	filename := filepath.Base(fileHeader.Filename)
	summary, err := h.summarizer.Summarize(c.Request.Context(), filename, file)
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrInvalidInput):
			h.metrics.RecordDocumentSummary("unknown", "rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domerrors.ErrProviderDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Summarization requires a configured LLM provider"})
		default:
			h.log.WithError(err).Error("Document summarization failed")
			h.metrics.RecordDocumentSummary("unknown", "error")
			sentry.CaptureException(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize document"})
		}
		return
	}

	h.metrics.RecordDocumentSummary(summary.Format, "success")
	c.JSON(http.StatusOK, summary)
}
