package handlers

import (
	"github.com/ezelectronics/ezelectronics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddReviewRequest 评价请求
type AddReviewRequest struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview 新增商品评价
func (h *Handler) AddReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if err := h.ReviewService.AddReview(user.Username, c.Param("model"), req.Score, req.Comment); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListReviews 查询商品评价
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.ReviewService.GetReviews(c.Param("model"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, reviews)
}

// DeleteOwnReview 删除本人对商品的评价
func (h *Handler) DeleteOwnReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.ReviewService.DeleteReview(user.Username, c.Param("model")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteProductReviews 删除商品的全部评价
func (h *Handler) DeleteProductReviews(c *gin.Context) {
	model := c.Param("model")
	if err := h.ReviewService.DeleteReviewsOfProduct(model); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("product_reviews_cleared", "model", model)
	response.Success(c, nil)
}

// DeleteAllReviews 删除全部评价
func (h *Handler) DeleteAllReviews(c *gin.Context) {
	if err := h.ReviewService.DeleteAllReviews(); err != nil {
		respondError(c, response.CodeInternal, "Delete reviews failed", err)
		return
	}
	requestLog(c).Infow("reviews_cleared")
	response.Success(c, nil)
}
