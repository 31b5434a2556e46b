package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

// render executes the named template with the requester added to data.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if user := h.getUserFromRequest(c); user != nil {
		data["user"] = user
	}
	if token := c.GetString(csrfCtxKey); token != "" {
		data["csrf_token"] = token
	}
	c.HTML(status, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "core/404.html", gin.H{
		"title": "Страница не найдена",
		"path":  c.Request.URL.Path,
	})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	c.Error(err)
	h.render(c, http.StatusInternalServerError, "core/500.html", gin.H{
		"title": "Ошибка сервера",
	})
}

func postIDParam(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil || postID < 1 {
		return 0, false
	}
	return postID, true
}

func postDetailURL(postID int64) string {
	return "/posts/" + strconv.FormatInt(postID, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// safeNext keeps post-login redirects on this site. Anything that is not
// a plain absolute path falls back to "/".
func safeNext(next string) string {
	for _, r := range next {
		if unicode.IsControl(r) {
			return "/"
		}
	}
	if strings.Contains(next, "\\") {
		return "/"
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	if !strings.HasPrefix(next, "/") || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}

	return next
}
