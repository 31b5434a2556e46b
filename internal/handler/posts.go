package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/service"
)

func (h *Handler) postsIndex(c *gin.Context) {
	page, err := h.services.Post.FindAll(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/index.html", gin.H{
		"title":    "Последние обновления на сайте",
		"posts":    page.Items,
		"page_obj": page,
	})
}

func (h *Handler) postsGroupList(c *gin.Context) {
	group, page, err := h.services.Post.FindGroupPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    "Записи сообщества " + group.Title,
		"group":    group,
		"posts":    page.Items,
		"page_obj": page,
	})
}

func (h *Handler) postsProfile(c *gin.Context) {
	author, page, err := h.services.Post.FindAuthorPosts(c.Request.Context(), c.Param("username"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/profile.html", gin.H{
		"title":    "Профайл пользователя " + author.Username,
		"author":   author,
		"posts":    page.Items,
		"page_obj": page,
	})
}

func (h *Handler) postsDetail(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	user := h.getUserFromRequest(c)
	h.render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":     "Пост " + truncateTitle(post.Post.Text),
		"post":      post,
		"is_author": user != nil && user.ID == post.Post.AuthorID,
	})
}

func (h *Handler) postsCreateForm(c *gin.Context) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"title":   "Новый пост",
		"form":    dto.NewPostForm(groups, "", ""),
		"is_edit": false,
	})
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.PostRequest
	if err := c.ShouldBind(&input); err != nil {
		c.Error(err)
	}

	_, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			h.serverError(c, err)
			return
		}

		groups, err := h.services.Group.FindAll(c.Request.Context())
		if err != nil {
			h.serverError(c, err)
			return
		}

		form := dto.NewPostForm(groups, input.Text, input.Group)
		addFormErrors(form, verr)
		h.render(c, http.StatusOK, "posts/create_post.html", gin.H{
			"title":   "Новый пост",
			"form":    form,
			"is_edit": false,
		})
		return
	}

	c.Redirect(http.StatusFound, profileURL(user.Username))
}

func (h *Handler) postsEditForm(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	post, err := h.services.Post.FindEditable(c.Request.Context(), postID, user.ID)
	if err != nil {
		h.handleEditError(c, postID, err)
		return
	}

	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"title":   "Редактировать пост",
		"form":    dto.PostFormFrom(groups, post.Post),
		"post":    post,
		"is_edit": true,
	})
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	var input dto.PostRequest
	if err := c.ShouldBind(&input); err != nil {
		c.Error(err)
	}

	_, err := h.services.Post.Update(c.Request.Context(), postID, user.ID, input)
	if err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			h.handleEditError(c, postID, err)
			return
		}

		post, err := h.services.Post.FindByID(c.Request.Context(), postID)
		if err != nil {
			h.handleEditError(c, postID, err)
			return
		}
		groups, err := h.services.Group.FindAll(c.Request.Context())
		if err != nil {
			h.serverError(c, err)
			return
		}

		form := dto.NewPostForm(groups, input.Text, input.Group)
		addFormErrors(form, verr)
		h.render(c, http.StatusOK, "posts/create_post.html", gin.H{
			"title":   "Редактировать пост",
			"form":    form,
			"post":    post,
			"is_edit": true,
		})
		return
	}

	c.Redirect(http.StatusFound, postDetailURL(postID))
}

// handleEditError turns ownership failures into a redirect to the post.
func (h *Handler) handleEditError(c *gin.Context, postID int64, err error) {
	switch {
	case errors.Is(err, service.ErrNotPostAuthor):
		c.Redirect(http.StatusFound, postDetailURL(postID))
	case errors.Is(err, service.ErrPostNotFound):
		h.notFound(c)
	default:
		h.serverError(c, err)
	}
}

func (h *Handler) apiPostsGetByID(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}

	user := h.getUserFromRequest(c)
	c.JSON(http.StatusOK, dto.GetPost{
		Post:     *post,
		IsAuthor: user != nil && user.ID == post.Post.AuthorID,
	})
}

func addFormErrors(form *dto.Form, verr *service.ValidationError) {
	for field, err := range verr.Fields {
		form.AddError(field, err.Error())
	}
}

func truncateTitle(text string) string {
	runes := []rune(text)
	if len(runes) > 30 {
		return string(runes[:30])
	}
	return text
}
