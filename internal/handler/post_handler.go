package handler

import (
	"net/http"
	"strconv"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostReq struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type EditPostReq struct {
	Content string `json:"content" binding:"required"`
}

type CommentReq struct {
	Text string `json:"text" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.Content, req.ImageURL)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// Feed pages the viewer's timeline; a zero next_cursor marks the last
// page.
func (h *PostHandler) Feed(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, next, err := h.svc.Feed(c.Request.Context(), userIDFromCtx(c), cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "next_cursor": next})
}

// UserPosts renders a profile's posts, or the locked placeholder
// signal when the viewer lacks an accepted edge.
func (h *PostHandler) UserPosts(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ownerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	list, err := h.svc.UserPosts(c.Request.Context(), userIDFromCtx(c), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *PostHandler) Edit(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req EditPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Edit(c.Request.Context(), userIDFromCtx(c), postID, req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *PostHandler) ToggleHidden(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	hidden, err := h.svc.ToggleHidden(c.Request.Context(), userIDFromCtx(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hidden": hidden})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	liked, err := h.svc.ToggleLike(c.Request.Context(), userIDFromCtx(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	count, err := h.svc.LikeCount(c.Request.Context(), userIDFromCtx(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": count})
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.AddComment(c.Request.Context(), userIDFromCtx(c), postID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

func (h *PostHandler) Comments(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	list, err := h.svc.Comments(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
