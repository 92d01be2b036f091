package handler

import (
	"net/http"
	"strconv"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type GrantCreditsReq struct {
	Amount int64 `json:"amount" binding:"required"`
}

func (h *AdminHandler) Roster(c *gin.Context) {
	users, err := h.svc.Roster(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"role":      u.Role,
			"credits":   u.Credits,
			"is_banned": u.IsBanned,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

func (h *AdminHandler) GrantCredits(c *gin.Context) {
	targetID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req GrantCreditsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.GrantCredits(c.Request.Context(), userIDFromCtx(c), targetID, req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AdminHandler) ToggleBan(c *gin.Context) {
	targetID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	banned, err := h.svc.ToggleBan(c.Request.Context(), userIDFromCtx(c), targetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": banned})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	targetID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateUser(c.Request.Context(), userIDFromCtx(c), targetID, fields); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
