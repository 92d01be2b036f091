package handler

import (
	"net/http"
	"strconv"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type SendMessageReq struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Text       string `json:"text"`
	ImageURL   string `json:"image_url"`
	AudioURL   string `json:"audio_url"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), userIDFromCtx(c), req.ReceiverID, service.MessagePayload{
		Text:     req.Text,
		ImageURL: req.ImageURL,
		AudioURL: req.AudioURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": msg.ID})
}

func (h *MessageHandler) Conversation(c *gin.Context) {
	peerID, _ := strconv.ParseUint(c.Query("peer_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.Conversation(c.Request.Context(), userIDFromCtx(c), peerID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

func (h *MessageHandler) Peers(c *gin.Context) {
	users, err := h.svc.Peers(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{"id": u.ID, "name": u.Name, "avatar": u.Avatar})
	}
	c.JSON(http.StatusOK, gin.H{"peers": list})
}
