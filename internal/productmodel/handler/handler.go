package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
)

type ModelHandler struct {
	uc     productmodel.UseCase
	logger logger.ZapLogger
}

func NewModelHandler(uc productmodel.UseCase, log logger.ZapLogger) *ModelHandler {
	return &ModelHandler{uc: uc, logger: log}
}

func (h *ModelHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/model")
	g.POST("/create", h.CreateModel)
	g.GET("/get/:id", h.GetModel)
	g.GET("/by-brand/:id", h.ListByBrand)
}

func (h *ModelHandler) CreateModel(c *gin.Context) {
	var input dto.CreateModelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.uc.CreateModel(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, m)
}

func (h *ModelHandler) GetModel(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	m, err := h.uc.GetModel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, m)
}

func (h *ModelHandler) ListByBrand(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	models, err := h.uc.ListByBrand(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, models)
}
