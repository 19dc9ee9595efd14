package service

import "errors"

// 商品相关业务错误
var (
	ErrProductNotFound      = errors.New("Product not found")
	ErrProductAlreadyExists = errors.New("Product already exists")
	ErrProductSoldOut       = errors.New("Product sold out")
	ErrEmptyProductStock    = errors.New("Product stock is empty")
	ErrLowProductStock      = errors.New("Product stock cannot satisfy the requested quantity")
	ErrInvalidCategory      = errors.New("Invalid product category")
	ErrInvalidGrouping      = errors.New("Invalid grouping parameters")
	ErrInvalidArrivalDate   = errors.New("Arrival date cannot be in the future")
	ErrInvalidChangeDate    = errors.New("Change date is invalid")
	ErrInvalidSellingDate   = errors.New("Selling date is invalid")
)

// 购物车相关业务错误
var (
	ErrCartNotFound     = errors.New("Cart not found")
	ErrCartEmpty        = errors.New("Cart is empty")
	ErrProductNotInCart = errors.New("Product not in cart")
)

// 用户与会话相关业务错误
var (
	ErrUserNotFound       = errors.New("User not found")
	ErrUserAlreadyExists  = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidRole        = errors.New("Invalid user role")
	ErrUserAccessDenied   = errors.New("You cannot access the information of other users")
	ErrAdminUndeletable   = errors.New("Admins cannot be deleted")
	ErrInvalidBirthdate   = errors.New("Birthdate cannot be in the future")
	ErrWeakPassword       = errors.New("Password does not satisfy the security policy")
)

// 评价相关业务错误
var (
	ErrReviewAlreadyExists = errors.New("You have already reviewed this product")
	ErrReviewNotFound      = errors.New("Review not found")
	ErrInvalidReviewScore  = errors.New("Score must be between 1 and 5")
)
