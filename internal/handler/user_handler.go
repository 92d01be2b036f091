package handler

import (
	"net/http"

	"sclusiv/internal/pkg"
	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     *service.UserService
	credits *service.CreditService
}

func NewUserHandler(svc *service.UserService, credits *service.CreditService) *UserHandler {
	return &UserHandler{svc: svc, credits: credits}
}

type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Avatar   string `json:"avatar"`
}

type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password"`
}

type UpdateProfileReq struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Password   *string `json:"password"`
	Avatar     *string `json:"avatar"`
	CoverImage *string `json:"cover_image"`
	Sex        *string `json:"sex"`
	Age        *int    `json:"age"`
	Location   *string `json:"location"`
	IsPublic   *bool   `json:"is_public"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, pair, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"role":          user.Role,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	uid := userIDFromCtx(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}
	if err := h.svc.Logout(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, err := pkg.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// Me returns the current profile, always re-fetched from the identity
// store.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.Current(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"phone":           user.Phone,
		"avatar":          user.Avatar,
		"cover_image":     user.CoverImage,
		"sex":             user.Sex,
		"age":             user.Age,
		"location":        user.Location,
		"role":            user.Role,
		"credits":         user.Credits,
		"is_public":       user.IsPublic,
		"following_count": user.FollowingCount,
		"follower_count":  user.FollowerCount,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userIDFromCtx(c), service.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
		Sex:        req.Sex,
		Age:        req.Age,
		Location:   req.Location,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name, "credits": user.Credits})
}

// Permissions exposes the pure decision ops so the presentation layer
// can grey out affordances without attempting the mutation.
func (h *UserHandler) Permissions(c *gin.Context) {
	uid := userIDFromCtx(c)
	out := gin.H{"can_change_name": true, "can_send_message": true}
	if err := h.svc.CanChangeName(c.Request.Context(), uid); err != nil {
		out["can_change_name"] = false
		out["name_change_blocked_by"] = err.Error()
	}
	if err := h.svc.CanSendMessage(c.Request.Context(), uid); err != nil {
		out["can_send_message"] = false
		out["message_blocked_by"] = err.Error()
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) CreditHistory(c *gin.Context) {
	entries, err := h.credits.History(c.Request.Context(), userIDFromCtx(c), 50)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
