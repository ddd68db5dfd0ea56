package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	uc     brand.UseCase
	logger logger.ZapLogger
}

func NewBrandHandler(uc brand.UseCase, log logger.ZapLogger) *BrandHandler {
	return &BrandHandler{uc: uc, logger: log}
}

func (h *BrandHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/brand")
	g.POST("/create", h.CreateBrand)
	g.GET("/get-all", h.ListBrands)
	g.GET("/get/:id", h.GetBrand)
}

type createBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req createBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.uc.CreateBrand(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, b)
}

func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	b, err := h.uc.GetBrand(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.uc.ListBrands(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, brands)
}
