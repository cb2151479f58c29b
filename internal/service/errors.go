package service

import "errors"

// 错误类别，由 handler 映射为 HTTP 状态码
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("service unavailable")
)

// DomainError 携带对外提示信息的业务错误
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func newDomainError(kind error, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// validationError 构造请求参数错误
func validationError(message string) error {
	return newDomainError(ErrValidation, message)
}

// 认证相关
var (
	ErrMissingRegisterFields = newDomainError(ErrValidation, "Please fill all fields")
	ErrPasswordMismatch      = newDomainError(ErrValidation, "Passwords do not match")
	ErrEmailExists           = newDomainError(ErrValidation, "Admin with this email already exists")
	ErrMissingLoginFields    = newDomainError(ErrValidation, "Email and password are required")
	ErrInvalidCredentials    = newDomainError(ErrUnauthorized, "Invalid email or password")
	ErrAdminNotFound         = newDomainError(ErrNotFound, "Admin not found")
	ErrRegistrationClosed    = newDomainError(ErrForbidden, "Registration is disabled")
	ErrCaptchaRequired       = newDomainError(ErrValidation, "Captcha is required")
	ErrCaptchaInvalid        = newDomainError(ErrValidation, "Invalid captcha")
	ErrCaptchaDisabled       = newDomainError(ErrNotFound, "Captcha is not enabled")
	ErrWeakPassword          = errors.New("password does not meet policy")
)

// Token 相关
var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrTokenExpired = &tokenExpiredError{}
)

type tokenExpiredError struct{}

func (*tokenExpiredError) Error() string { return "token expired" }

func (*tokenExpiredError) Is(target error) bool { return target == ErrTokenInvalid }

// 资源相关
var (
	ErrProductNotFound  = newDomainError(ErrNotFound, "Product not found")
	ErrProductFields    = newDomainError(ErrValidation, "Please fill all required fields")
	ErrOrderNotFound    = newDomainError(ErrNotFound, "Order not found")
	ErrOrderFields      = newDomainError(ErrValidation, "Please provide name, phone, items, and address")
	ErrInvalidStatus    = newDomainError(ErrValidation, "Invalid status value")
	ErrStatusTransition = newDomainError(ErrValidation, "Invalid status transition")
	ErrMessageNotFound  = newDomainError(ErrNotFound, "Message not found")
	ErrMessageFields    = newDomainError(ErrValidation, "Please fill all fields")
	ErrReplyEmpty       = newDomainError(ErrValidation, "Reply cannot be empty")
	ErrDatabaseNotReady = newDomainError(ErrUnavailable, "Database connection is not ready")
)

// 图片相关
var (
	ErrImageMissing     = newDomainError(ErrValidation, "No image file provided")
	ErrInvalidFileType  = newDomainError(ErrValidation, "Invalid file type. Allowed: JPEG, PNG, WEBP, GIF")
	ErrFileTooLarge     = newDomainError(ErrValidation, "File too large. Maximum size is 5MB")
	ErrFilenameRequired = newDomainError(ErrValidation, "Filename is required")
	ErrForbiddenPath    = newDomainError(ErrForbidden, "Invalid filename")
	ErrImageNotFound    = newDomainError(ErrNotFound, "Image not found or already deleted")
)
