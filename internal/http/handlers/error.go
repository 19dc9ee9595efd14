package handlers

import (
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/http/response"
	"github.com/ezelectronics/ezelectronics/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.target.Error(), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var notFoundErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrCartNotFound, code: response.CodeNotFound},
	{target: service.ErrProductNotInCart, code: response.CodeNotFound},
	{target: service.ErrUserNotFound, code: response.CodeNotFound},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound},
}

var conflictErrorRules = []mappedHandlerError{
	{target: service.ErrProductAlreadyExists, code: response.CodeConflict},
	{target: service.ErrProductSoldOut, code: response.CodeConflict},
	{target: service.ErrEmptyProductStock, code: response.CodeConflict},
	{target: service.ErrLowProductStock, code: response.CodeConflict},
	{target: service.ErrUserAlreadyExists, code: response.CodeConflict},
	{target: service.ErrReviewAlreadyExists, code: response.CodeConflict},
}

var validationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCategory, code: response.CodeUnprocessable},
	{target: service.ErrInvalidGrouping, code: response.CodeUnprocessable},
	{target: service.ErrInvalidRole, code: response.CodeUnprocessable},
	{target: service.ErrInvalidReviewScore, code: response.CodeUnprocessable},
	{target: service.ErrInvalidArrivalDate, code: response.CodeUnprocessable},
	{target: service.ErrInvalidChangeDate, code: response.CodeUnprocessable},
	{target: service.ErrInvalidSellingDate, code: response.CodeUnprocessable},
	{target: service.ErrWeakPassword, code: response.CodeUnprocessable},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest},
	{target: service.ErrInvalidBirthdate, code: response.CodeBadRequest},
}

var accessErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrUserAccessDenied, code: response.CodeUnauthorized},
	{target: service.ErrAdminUndeletable, code: response.CodeUnauthorized},
}

var serviceErrorRules = concatMappedHandlerErrors(
	notFoundErrorRules,
	conflictErrorRules,
	validationErrorRules,
	accessErrorRules,
)

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

func respondServiceError(c *gin.Context, err error) {
	respondWithMappedError(c, err, serviceErrorRules, response.CodeInternal, "Internal server error")
}

// weakPasswordMessage 弱密码错误携带具体原因，优先返回原始消息。
func weakPasswordMessage(err error) string {
	if errors.Is(err, service.ErrWeakPassword) {
		return err.Error()
	}
	return ""
}
