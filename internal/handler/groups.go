package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/service"
)

func (h *Handler) apiGroupsCreate(c *gin.Context) {
	var input dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}

	group, err := h.services.Group.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		case errors.Is(err, service.ErrGroupSlugTaken):
			c.JSON(http.StatusConflict, dto.NewErrorResponse(err))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		}
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *Handler) apiGroupsGet(c *gin.Context) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}

	if groups == nil {
		groups = []*model.Group{}
	}

	c.JSON(http.StatusOK, groups)
}
