package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuspal/schedule-assistant/internal/schedule"
	"github.com/campuspal/schedule-assistant/internal/timeouts"
)

// voiceRequest is one transcribed query. The context field replays the
// conversation state returned by the previous response; omitting it
// starts a fresh conversation.
type voiceRequest struct {
	Text    string            `json:"text"`
	Context *schedule.Context `json:"context"`
}

type voiceResponse struct {
	Reply   string            `json:"reply"`
	Context *schedule.Context `json:"context"`
}

// ProcessVoice resolves one voice query against the timetable.
func (h *Handler) ProcessVoice(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		h.metrics.RecordHTTPError("rate_limited", "/process-voice")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Slow down a little! 😅"})
		return
	}

	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPError("bad_request", "/process-voice")
		c.JSON(http.StatusBadRequest, gin.H{"reply": "No data received"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.metrics.RecordHTTPError("bad_request", "/process-voice")
		c.JSON(http.StatusBadRequest, gin.H{"reply": "Please say something!"})
		return
	}

	cctx := req.Context
	if cctx == nil {
		cctx = &schedule.Context{}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeouts.QueryProcessing)
	defer cancel()

	start := time.Now()
	reply, intent := h.assistant.Handle(ctx, req.Text, h.now(), cctx)
	h.metrics.RecordQuery(intent, time.Since(start).Seconds())

	// Queries the rule engine could not place go to the chat provider
	// when one is configured; its canned reply stays as the fallback.
	if intent == schedule.IntentFallback && h.responder != nil {
		if generated := h.chatFallback(ctx, req.Text); generated != "" {
			reply = generated
		}
	}

	h.log.WithField("intent", intent).
		WithField("ip", c.ClientIP()).
		Debug("Processed voice query")

	c.JSON(http.StatusOK, voiceResponse{Reply: reply, Context: cctx})
}

func (h *Handler) chatFallback(ctx context.Context, text string) string {
	llmCtx, cancel := context.WithTimeout(ctx, h.cfg.LLMTimeout)
	defer cancel()

	start := time.Now()
	generated, err := h.responder.Reply(llmCtx, text)
	if err != nil {
		h.metrics.RecordLLMRequest(h.responder.Name(), "error", time.Since(start).Seconds())
		h.log.WithError(err).Warn("Chat fallback failed, using canned reply")
		return ""
	}
	h.metrics.RecordLLMRequest(h.responder.Name(), "success", time.Since(start).Seconds())
	return generated
}
