package handlers

import (
	"github.com/ezelectronics/ezelectronics/internal/http/response"
	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例。
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志。
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// currentUser 从上下文还原已认证用户（由 JWT 中间件写入）。
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondError(c, response.CodeUnauthorized, "Unauthenticated user", nil)
		return nil, false
	}
	uid, ok := userID.(uint)
	if !ok {
		respondError(c, response.CodeInternal, "Invalid user identity", nil)
		return nil, false
	}
	username := c.GetString("username")
	role := c.GetString("role")
	if username == "" || role == "" {
		respondError(c, response.CodeUnauthorized, "Unauthenticated user", nil)
		return nil, false
	}
	return &models.User{ID: uid, Username: username, Role: role}, true
}
