package handlers

import (
	"github.com/ezelectronics/ezelectronics/internal/http/response"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterProductRequest 商品到货登记请求
type RegisterProductRequest struct {
	Model        string  `json:"model" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	Details      string  `json:"details"`
	SellingPrice float64 `json:"sellingPrice" binding:"required,gt=0"`
	ArrivalDate  string  `json:"arrivalDate"`
}

// ChangeQuantityRequest 补货请求
type ChangeQuantityRequest struct {
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	ChangeDate string `json:"changeDate"`
}

// SellProductRequest 线下售出请求
type SellProductRequest struct {
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	SellingDate string `json:"sellingDate"`
}

// parseOptionalDate 解析可选日期，缺省为当天。
func parseOptionalDate(raw string) (models.Date, bool) {
	if raw == "" {
		return models.Today(), true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, false
	}
	return d, true
}

// RegisterProducts 登记新到货商品
func (h *Handler) RegisterProducts(c *gin.Context) {
	var req RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	arrivalDate, ok := parseOptionalDate(req.ArrivalDate)
	if !ok {
		respondError(c, response.CodeBadRequest, "Invalid arrivalDate format", nil)
		return
	}

	err := h.ProductService.RegisterProducts(service.RegisterProductInput{
		Model:        req.Model,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Details:      req.Details,
		SellingPrice: models.NewMoneyFromFloat(req.SellingPrice),
		ArrivalDate:  arrivalDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("product_registered", "model", req.Model, "quantity", req.Quantity)
	response.Success(c, nil)
}

// ChangeProductQuantity 商品补货
func (h *Handler) ChangeProductQuantity(c *gin.Context) {
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	changeDate, ok := parseOptionalDate(req.ChangeDate)
	if !ok {
		respondError(c, response.CodeBadRequest, "Invalid changeDate format", nil)
		return
	}

	quantity, err := h.ProductService.ChangeProductQuantity(c.Param("model"), req.Quantity, changeDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"quantity": quantity})
}

// SellProduct 记录线下售出
func (h *Handler) SellProduct(c *gin.Context) {
	var req SellProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	sellingDate, ok := parseOptionalDate(req.SellingDate)
	if !ok {
		respondError(c, response.CodeBadRequest, "Invalid sellingDate format", nil)
		return
	}

	quantity, err := h.ProductService.SellProduct(c.Param("model"), req.Quantity, sellingDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"quantity": quantity})
}

// ListProducts 查询商品（含缺货）
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductService.GetProducts(
		c.Query("grouping"),
		c.Query("category"),
		c.Query("model"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, products)
}

// ListAvailableProducts 查询有货商品
func (h *Handler) ListAvailableProducts(c *gin.Context) {
	products, err := h.ProductService.GetAvailableProducts(
		c.Query("grouping"),
		c.Query("category"),
		c.Query("model"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, products)
}

// DeleteProduct 删除指定商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	model := c.Param("model")
	if err := h.ProductService.DeleteProduct(model); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("product_deleted", "model", model)
	response.Success(c, nil)
}

// DeleteAllProducts 清空商品
func (h *Handler) DeleteAllProducts(c *gin.Context) {
	if err := h.ProductService.DeleteAllProducts(); err != nil {
		respondError(c, response.CodeInternal, "Delete products failed", err)
		return
	}
	requestLog(c).Infow("products_cleared")
	response.Success(c, nil)
}

// ListStockAlerts 查询低库存告警记录
func (h *Handler) ListStockAlerts(c *gin.Context) {
	alerts, err := h.StockAlertRepo.ListRecent(0)
	if err != nil {
		respondError(c, response.CodeInternal, "List stock alerts failed", err)
		return
	}
	response.Success(c, alerts)
}
