package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/post-service/internal/dto"
)

// moderatorMiddleware accepts bearer tokens only, never the session cookie.
func (h *Handler) moderatorMiddleware(c *gin.Context) {
	if bearerToken(c) == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNoBearerToken))
		c.Abort()
		return
	}

	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized))
		c.Abort()
		return
	}

	if !user.IsStaff() {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errNoAccess))
		c.Abort()
		return
	}

	c.Next()
}
