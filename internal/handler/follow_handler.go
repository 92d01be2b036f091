package handler

import (
	"net/http"
	"strconv"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

type followActionReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=request accept decline unfollow"`
}

// Act dispatches the four follow-graph operations. request/unfollow
// act on the body's user as target; accept/decline treat it as the
// requester.
func (h *FollowHandler) Act(c *gin.Context) {
	var req followActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	var (
		changed bool
		err     error
	)
	switch req.Action {
	case "request":
		changed, err = h.svc.Request(c.Request.Context(), uid, req.UserID)
	case "accept":
		changed, err = h.svc.Accept(c.Request.Context(), uid, req.UserID)
	case "decline":
		changed, err = h.svc.Decline(c.Request.Context(), uid, req.UserID)
	case "unfollow":
		changed, err = h.svc.Unfollow(c.Request.Context(), uid, req.UserID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *FollowHandler) ListRequests(c *gin.Context) {
	users, err := h.svc.PendingRequesters(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{"id": u.ID, "name": u.Name, "avatar": u.Avatar})
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

func (h *FollowHandler) ListFollowings(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListFollowings(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

func (h *FollowHandler) ListFollowers(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListFollowers(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// Relation reports whether the current user follows `to`.
func (h *FollowHandler) Relation(c *gin.Context) {
	to, _ := strconv.ParseUint(c.Query("to"), 10, 64)
	ok, err := h.svc.IsFollowing(c.Request.Context(), userIDFromCtx(c), to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": ok})
}
