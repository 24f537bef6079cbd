package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 错误响应结构；成功响应直接返回资源本身
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// 通用错误码
const (
	CodeInvalidParams = 10001
	CodeInvalidSort   = 10002
	CodeTooManyReqs   = 10004
	CodeBodyTooLarge  = 10005
	CodeInternal      = 50000
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204，附带纯文本说明（如 "Course deleted"）
// 注意 net/http 不会为 204 写出响应体，客户端只能依赖状态码
func NoContent(c *gin.Context, message string) {
	c.String(http.StatusNoContent, message)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404，纯文本响应体即错误信息
func NotFound(c *gin.Context, message string) {
	c.String(http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message, details string) {
	ErrorWithDetails(c, http.StatusConflict, code, message, details)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeTooManyReqs, "请求过于频繁，请稍后再试")
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, details string) {
	ErrorWithDetails(c, http.StatusServiceUnavailable, CodeInternal, "服务不可用", details)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误")
}
