package handler

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yatube/post-service/internal/service"
	"github.com/yatube/post-service/web"
	"go.uber.org/zap"
)

type Config struct {
	AccessSecret []byte
	CookieName   string
	TokenTTL     time.Duration
	LoginURL     string
	// ClientOrigin is the allowed CORS origin. Empty disables CORS.
	ClientOrigin string
}

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	cfg      Config
}

func New(services *service.Service, logger *zap.Logger, cfg Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(web.Templates()))

	r.Use(h.loggerMiddleware, gin.Recovery())
	if h.cfg.ClientOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{h.cfg.ClientOrigin},
			AllowMethods:     []string{"POST", "GET"},
			AllowCredentials: true,
		}))
	}
	r.Use(h.authMiddleware)

	r.GET("/", h.postsIndex)
	r.GET("/group/:slug/", h.postsGroupList)
	r.GET("/profile/:username/", h.postsProfile)
	r.GET("/create/", h.requireAuthMiddleware, h.csrfMiddleware, h.postsCreateForm)
	r.POST("/create/", h.requireAuthMiddleware, h.csrfMiddleware, h.postsCreate)

	posts := r.Group("/posts/:postID")
	{
		posts.GET("/", h.postsDetail)
		posts.GET("/edit/", h.requireAuthMiddleware, h.csrfMiddleware, h.postsEditForm)
		posts.POST("/edit/", h.requireAuthMiddleware, h.csrfMiddleware, h.postsEdit)
	}

	auth := r.Group("/auth", h.csrfMiddleware)
	{
		auth.GET("/signup/", h.authSignUpForm)
		auth.POST("/signup/", h.authSignUp)
		auth.GET("/login/", h.authLoginForm)
		auth.POST("/login/", h.authLogin)
		auth.GET("/logout/", h.authLogout)
	}

	v1 := r.Group("/api/v1")
	{
		groups := v1.Group("/groups")
		{
			groups.GET("", h.apiGroupsGet)
			groups.POST("", h.moderatorMiddleware, h.apiGroupsCreate)
		}

		v1.GET("/posts/:postID", h.apiPostsGetByID)
	}

	r.NoRoute(h.notFound)

	return r
}
