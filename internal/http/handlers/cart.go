package handlers

import (
	"github.com/ezelectronics/ezelectronics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	Model string `json:"model" binding:"required"`
}

// GetCurrentCart 获取当前未支付购物车
func (h *Handler) GetCurrentCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCurrentCart(user.Username)
	if err != nil {
		respondError(c, response.CodeInternal, "Fetch cart failed", err)
		return
	}
	response.Success(c, cart)
}

// AddToCart 加入一件商品到当前购物车
func (h *Handler) AddToCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if err := h.CartService.AddToCart(user.Username, req.Model); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// CheckoutCart 结算当前购物车
func (h *Handler) CheckoutCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.CartService.Checkout(user.Username); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("cart_checked_out", "customer", user.Username)
	response.Success(c, nil)
}

// GetCartHistory 查询历史已支付购物车
func (h *Handler) GetCartHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	carts, err := h.CartService.GetCustomerCarts(user.Username)
	if err != nil {
		respondError(c, response.CodeInternal, "Fetch cart history failed", err)
		return
	}
	response.Success(c, carts)
}

// RemoveProductFromCart 从当前购物车移除一件商品
func (h *Handler) RemoveProductFromCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveProductFromCart(user.Username, c.Param("model")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ClearCurrentCart 清空当前购物车
func (h *Handler) ClearCurrentCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(user.Username); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListAllCarts 查询全部购物车
func (h *Handler) ListAllCarts(c *gin.Context) {
	carts, err := h.CartService.GetAllCarts()
	if err != nil {
		respondError(c, response.CodeInternal, "List carts failed", err)
		return
	}
	response.Success(c, carts)
}

// DeleteAllCarts 删除全部购物车
func (h *Handler) DeleteAllCarts(c *gin.Context) {
	if err := h.CartService.DeleteAllCarts(); err != nil {
		respondError(c, response.CodeInternal, "Delete carts failed", err)
		return
	}
	requestLog(c).Infow("carts_cleared")
	response.Success(c, nil)
}
