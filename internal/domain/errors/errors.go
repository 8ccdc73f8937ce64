package errors

import (
	"net/http"

	"trolley/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches business errors by error code so that copies produced by
// WithDetails still satisfy errors.Is against the predefined sentinels.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	return ok && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Cart-related errors
	ErrInvalidDeliveryType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DELIVERY_TYPE",
		"不支援的取餐方式",
		"",
	)

	ErrEmptyPromoCode = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_PROMO_CODE",
		"優惠碼不可為空白",
		"",
	)

	ErrPromoCodeNotFound = NewBaseError(
		http.StatusNotFound,
		"PROMO_CODE_NOT_FOUND",
		"查無此優惠碼",
		"",
	)

	ErrPromoCodeExpired = NewBaseError(
		http.StatusGone,
		"PROMO_CODE_EXPIRED",
		"優惠碼已過期",
		"",
	)

	ErrPromoValidationFailed = NewBaseError(
		http.StatusBadGateway,
		"PROMO_VALIDATION_FAILED",
		"優惠碼驗證失敗，請稍後再試",
		"",
	)

	ErrInvalidPromoDiscount = NewBaseError(
		http.StatusBadGateway,
		"INVALID_PROMO_DISCOUNT",
		"優惠碼折扣數值無效",
		"",
	)

	ErrPromoSuperseded = NewBaseError(
		http.StatusConflict,
		"PROMO_SUPERSEDED",
		"優惠碼狀態已變更，請重新操作",
		"",
	)

	// Catalog-related errors
	ErrDishNotFound = NewBaseError(
		http.StatusNotFound,
		"DISH_NOT_FOUND",
		"查無此餐點",
		"",
	)

	ErrDishUnavailable = NewBaseError(
		http.StatusConflict,
		"DISH_UNAVAILABLE",
		"餐點目前無法訂購",
		"",
	)

	ErrModifierNotFound = NewBaseError(
		http.StatusBadRequest,
		"MODIFIER_NOT_FOUND",
		"配料選項不屬於此餐點",
		"",
	)

	ErrDishAlreadyExists = NewBaseError(
		http.StatusConflict,
		"DISH_ALREADY_EXISTS",
		"餐點名稱已存在",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"找不到該使用者",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"此電子郵件已被註冊",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"建立使用者失敗",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"電子郵件或密碼錯誤",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"無效或已過期的重新整理權杖",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"密碼處理錯誤",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"請先登入",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"存取被拒絕",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"資料庫交易失敗",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "資料庫執行失敗"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
