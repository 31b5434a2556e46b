package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/service"
	"github.com/yatube/post-service/pkg/utils"
)

func (h *Handler) authSignUpForm(c *gin.Context) {
	h.render(c, http.StatusOK, "users/signup.html", gin.H{
		"title": "Регистрация",
		"form":  dto.NewSignUpForm(""),
	})
}

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBind(&input); err != nil {
		c.Error(err)
	}

	author, err := h.services.Author.SignUp(c.Request.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			h.serverError(c, err)
			return
		}

		form := dto.NewSignUpForm(input.Username)
		addFormErrors(form, verr)
		h.render(c, http.StatusOK, "users/signup.html", gin.H{
			"title": "Регистрация",
			"form":  form,
		})
		return
	}

	if err := h.setSession(c, author); err != nil {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) authLoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "users/login.html", gin.H{
		"title": "Войти",
		"form":  dto.NewLoginForm(""),
		"next":  c.Query("next"),
	})
}

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		c.Error(err)
	}

	author, err := h.services.Author.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.serverError(c, err)
			return
		}

		form := dto.NewLoginForm(input.Username)
		form.AddError("", err.Error())
		h.render(c, http.StatusOK, "users/login.html", gin.H{
			"title": "Войти",
			"form":  form,
			"next":  input.Next,
		})
		return
	}

	if err := h.setSession(c, author); err != nil {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, safeNext(input.Next))
}

func (h *Handler) authLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
	c.Set(userCtxKey, nil)

	h.render(c, http.StatusOK, "users/logged_out.html", gin.H{
		"title": "Вы вышли",
	})
}

func (h *Handler) setSession(c *gin.Context, author *model.Author) error {
	token, err := utils.EncodeJWT(jwt.MapClaims{
		"id":       author.ID.String(),
		"username": author.Username,
	}, h.cfg.AccessSecret, h.cfg.TokenTTL)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.TokenTTL.Seconds()), "/", "", false, true)

	return nil
}
