package handlers

import (
	"errors"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/http/response"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, service.ErrInvalidCredentials.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "Login failed", err)
		return
	}

	requestLog(c).Infow("user_login", "username", user.Username, "role", user.Role)
	response.Success(c, LoginResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Logout 注销当前会话
func (h *Handler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(user.Username); err != nil {
		respondError(c, response.CodeInternal, "Logout failed", err)
		return
	}
	requestLog(c).Infow("user_logout", "username", user.Username)
	response.Success(c, nil)
}

// CurrentSession 查询当前登录用户
func (h *Handler) CurrentSession(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	full, err := h.UserRepo.GetByUsername(user.Username)
	if err != nil {
		respondError(c, response.CodeInternal, "Fetch current user failed", err)
		return
	}
	if full == nil {
		respondError(c, response.CodeUnauthorized, service.ErrUserNotFound.Error(), nil)
		return
	}
	response.Success(c, full)
}
