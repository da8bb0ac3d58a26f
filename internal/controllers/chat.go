package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/assistant"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/rs/zerolog/log"
)

// RegisterChatRoutes registers the routes for the assistant with
// the RouterGroup that is passed.
func (co *Controller) RegisterChatRoutes(r *gin.RouterGroup) {
	r.POST("", co.Chat)
	r.POST("/stream", co.ChatStream)
}

type ChatRequest struct {
	Messages []assistant.Turn `json:"messages" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// An assistant outage must read like an assistant answer, not like a
// server error, so the UI can render it in the conversation.
const assistantUnavailable = "I'm having trouble reaching my language model right now. Your financial data is fine, please try again in a moment."

// grounding rebuilds the grounding document from the committed ledger
// state. It is rebuilt for every turn so the assistant never answers from
// stale aggregates.
func (co *Controller) grounding() (string, error) {
	data, err := assistant.Gather(co.reporter(), time.Now().In(time.UTC), co.Settings.Assistant.ContextSize)
	if err != nil {
		return "", err
	}

	return assistant.BuildContext(data), nil
}

// Chat returns the complete assistant reply for a conversation.
func (co *Controller) Chat(c *gin.Context) {
	var request ChatRequest
	if err := httputil.BindData(c, &request); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	grounding, err := co.grounding()
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	reply, err := co.Session.Send(c.Request.Context(), request.Messages, grounding)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("assistant request failed")
		reply = assistantUnavailable
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// ChatStream streams the assistant reply as server-sent events. Chunks are
// sent as "message" events, the stream ends with a "done" event. Failures
// mid-stream are sent as a final "message" so the client renders them
// conversationally.
func (co *Controller) ChatStream(c *gin.Context) {
	var request ChatRequest
	if err := httputil.BindData(c, &request); err != nil {
		httperror.New(c, http.StatusBadRequest, err.Error())
		return
	}

	grounding, err := co.grounding()
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	chunks, errs := co.Session.Stream(c.Request.Context(), request.Messages, grounding)

	for chunk := range chunks {
		c.SSEvent("message", chunk)
		c.Writer.Flush()
	}

	if err := <-errs; err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("assistant stream failed")
		c.SSEvent("message", assistantUnavailable)
		c.Writer.Flush()
	}

	c.SSEvent("done", "")
	c.Writer.Flush()
}
