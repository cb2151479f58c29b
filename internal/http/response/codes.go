package response

import "net/http"

// 响应状态码与 HTTP 状态码一致
const (
	CodeOK                 = http.StatusOK
	CodeCreated            = http.StatusCreated
	CodeBadRequest         = http.StatusBadRequest
	CodeUnauthorized       = http.StatusUnauthorized
	CodeForbidden          = http.StatusForbidden
	CodeNotFound           = http.StatusNotFound
	CodeTooManyRequests    = http.StatusTooManyRequests
	CodeInternal           = http.StatusInternalServerError
	CodeServiceUnavailable = http.StatusServiceUnavailable
)
