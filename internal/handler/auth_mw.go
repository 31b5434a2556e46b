package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/pkg/utils"
)

const userCtxKey = "user"

// authMiddleware resolves the requester from the session cookie or a bearer
// token. Anonymous requests pass through untouched.
func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := h.accessToken(c)
	if accessToken == "" {
		c.Next()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.cfg.AccessSecret)
	if err != nil {
		c.Next()
		return
	}

	idString, _ := claims["id"].(string)
	id, err := uuid.Parse(idString)
	if err != nil {
		c.Next()
		return
	}

	user, err := h.services.Author.FindByID(c.Request.Context(), id)
	if err != nil {
		c.Next()
		return
	}

	c.Set(userCtxKey, *user)

	c.Next()
}

func (h *Handler) accessToken(c *gin.Context) string {
	if token := bearerToken(c); token != "" {
		return token
	}

	cookie, err := c.Cookie(h.cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// requireAuthMiddleware sends anonymous requesters to the login page with
// a next parameter pointing back here.
func (h *Handler) requireAuthMiddleware(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

	if h.getUserFromRequest(c) == nil {
		c.Redirect(http.StatusFound, h.loginRedirectURL(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}

	c.Next()
}

func (h *Handler) loginRedirectURL(next string) string {
	return h.cfg.LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.Author {
	userReq, exists := c.Get(userCtxKey)
	if !exists {
		return nil
	}

	user, ok := userReq.(model.Author)
	if !ok {
		return nil
	}

	return &user
}
