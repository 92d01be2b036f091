package handler

import (
	"net/http"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type AssistHandler struct {
	svc *service.AssistService
}

func NewAssistHandler(svc *service.AssistService) *AssistHandler {
	return &AssistHandler{svc: svc}
}

type CaptionReq struct {
	Content string `json:"content" binding:"required"`
}

type ReplyReq struct {
	LastMessage string `json:"last_message" binding:"required"`
}

// Caption always succeeds: on any generator failure the original text
// comes back unchanged.
func (h *AssistHandler) Caption(c *gin.Context) {
	var req CaptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caption": h.svc.ImproveCaption(c.Request.Context(), req.Content)})
}

func (h *AssistHandler) Reply(c *gin.Context) {
	var req ReplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": h.svc.SuggestReply(c.Request.Context(), req.LastMessage)})
}
