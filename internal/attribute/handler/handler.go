package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/attribute"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
)

type AttributeHandler struct {
	uc     attribute.UseCase
	logger logger.ZapLogger
}

func NewAttributeHandler(uc attribute.UseCase, log logger.ZapLogger) *AttributeHandler {
	return &AttributeHandler{uc: uc, logger: log}
}

func (h *AttributeHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/attribute")
	g.POST("/create", h.CreateAttribute)
	g.GET("/category/:id", h.ByCategory)
}

func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var input dto.CreateAttributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, err := h.uc.CreateAttribute(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, a)
}

// ByCategory lists attributes of a category; ?changeable=true drops the fixed ones.
func (h *AttributeHandler) ByCategory(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	attrs, err := h.uc.AttributesForCategory(c.Request.Context(), id, c.Query("changeable") == "true")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, attrs)
}
