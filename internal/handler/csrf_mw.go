package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csrfCookieName = "csrftoken"
	csrfFormField  = "csrfmiddlewaretoken"
	csrfCtxKey     = "csrf_token"
)

// csrfMiddleware implements a double-submit token: the cookie value must come
// back in the csrfmiddlewaretoken form field of every POST.
func (h *Handler) csrfMiddleware(c *gin.Context) {
	cookie, _ := c.Cookie(csrfCookieName)
	token := cookie
	if _, err := uuid.Parse(token); err != nil {
		token = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(csrfCookieName, token, int(h.cfg.TokenTTL.Seconds()), "/", "", false, true)
	}
	c.Set(csrfCtxKey, token)

	if c.Request.Method != http.MethodPost {
		c.Next()
		return
	}

	submitted := c.PostForm(csrfFormField)
	if token != cookie || subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie)) != 1 {
		c.Error(errCSRFFailed)
		h.render(c, http.StatusForbidden, "core/403csrf.html", gin.H{
			"title": "Ошибка проверки CSRF",
		})
		c.Abort()
		return
	}

	c.Next()
}
