package handlers

import (
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/http/response"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterUserRequest 注册请求
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest 资料更新请求
type UpdateUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Birthdate string `json:"birthdate" binding:"required"`
}

// RegisterUser 注册用户
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	err := h.UserService.Register(service.RegisterUserInput{
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeUnprocessable, weakPasswordMessage(err), nil)
			return
		}
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("user_registered", "username", req.Username, "role", req.Role)
	response.Success(c, nil)
}

// ListUsers 列出全部用户
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "List users failed", err)
		return
	}
	response.Success(c, users)
}

// ListUsersByRole 按角色列出用户
func (h *Handler) ListUsersByRole(c *gin.Context) {
	users, err := h.UserService.ListByRole(c.Param("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, users)
}

// GetUser 查询指定用户
func (h *Handler) GetUser(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByUsername(requester, c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新用户资料
func (h *Handler) UpdateUser(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	birthdate, err := models.ParseDate(req.Birthdate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid birthdate format", nil)
		return
	}

	user, err := h.UserService.UpdateInfo(requester, c.Param("username"), service.UpdateUserInput{
		Name:      req.Name,
		Surname:   req.Surname,
		Address:   req.Address,
		Birthdate: &birthdate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除指定用户
func (h *Handler) DeleteUser(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		return
	}
	username := c.Param("username")
	if err := h.UserService.Delete(requester, username); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("user_deleted", "username", username, "requester", requester.Username)
	response.Success(c, nil)
}

// DeleteAllUsers 删除全部非管理员用户
func (h *Handler) DeleteAllUsers(c *gin.Context) {
	if err := h.UserService.DeleteAllNonAdmin(); err != nil {
		respondError(c, response.CodeInternal, "Delete users failed", err)
		return
	}
	requestLog(c).Infow("users_cleared")
	response.Success(c, nil)
}
