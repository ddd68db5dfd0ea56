package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/product")
	g.POST("/create", h.Compose)
	g.GET("/get-all", h.FindAll)
	g.GET("/get-popular", h.FindPopular)
	g.GET("/last-view", h.FindLastViewed)
	g.POST("/filter", h.Filter)
	g.GET("/search", h.Search)
	g.GET("/sale", h.FindSaleProducts)
	g.GET("/attributes", h.AttributesForNewProduct)
	g.GET("/get/:id", h.FindOne)
	g.PATCH("/update/:id", h.Update)
	g.DELETE("/delete/:id", h.Remove)
	g.GET("/by-category/:id", h.FindByCategory)
	g.GET("/by-brand/:id", h.FindByBrand)
	g.GET("/by-model/:id", h.FindByModel)
}

func (h *ProductHandler) Compose(c *gin.Context) {
	var input dto.ComposeProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.Compose(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) FindAll(c *gin.Context) {
	products, err := h.uc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) FindPopular(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	products, err := h.uc.FindPopular(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) FindLastViewed(c *gin.Context) {
	products, err := h.uc.FindLastViewed(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) Filter(c *gin.Context) {
	var filters dto.ProductFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	products, err := h.uc.Filter(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) FindSaleProducts(c *gin.Context) {
	products, err := h.uc.FindSaleProducts(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) AttributesForNewProduct(c *gin.Context) {
	categoryID, err1 := strconv.ParseInt(c.Query("category_id"), 10, 64)
	modelID, err2 := strconv.ParseInt(c.Query("model_id"), 10, 64)
	if err1 != nil || err2 != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("category_id and model_id are required"))
		return
	}

	attrs, err := h.uc.AttributesForNewProduct(c.Request.Context(), categoryID, modelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, attrs)
}

func (h *ProductHandler) FindOne(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	p, err := h.uc.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.ID = id

	p, err := h.uc.Update(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) Remove(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.uc.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) FindByCategory(c *gin.Context) {
	h.listByID(c, h.uc.FindByCategory)
}

func (h *ProductHandler) FindByBrand(c *gin.Context) {
	h.listByID(c, h.uc.FindByBrand)
}

func (h *ProductHandler) FindByModel(c *gin.Context) {
	h.listByID(c, h.uc.FindByModel)
}

func (h *ProductHandler) listByID(c *gin.Context, find func(ctx context.Context, id int64) ([]model.Product, error)) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	products, err := find(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, products)
}
