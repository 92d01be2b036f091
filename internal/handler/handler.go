package handler

import (
	"errors"
	"net/http"

	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

// fail maps rule failures onto status codes; everything else is a 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrWrongPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrBanned), errors.Is(err, service.ErrNoPermission):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrNameChangeLimit):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrReservedEmail):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyExists):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}
