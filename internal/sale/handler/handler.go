package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/internal/sale"
	"github.com/fekuna/omnipos-catalog-service/internal/sale/dto"
	"github.com/gin-gonic/gin"
)

// Refresher is satisfied by the sale scheduler.
type Refresher interface {
	Trigger()
}

type SaleHandler struct {
	uc        sale.UseCase
	refresher Refresher
	logger    logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, refresher Refresher, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{uc: uc, refresher: refresher, logger: log}
}

func (h *SaleHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/sale")
	g.POST("/create", h.CreateSale)
	g.GET("/active-models", h.ActiveModels)
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var input dto.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	s, err := h.uc.CreateSale(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.refresher.Trigger()
	response.Created(c, s)
}

func (h *SaleHandler) ActiveModels(c *gin.Context) {
	ids, err := h.uc.ActiveModelIDs(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, gin.H{"model_ids": ids})
}
