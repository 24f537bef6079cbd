package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"course-management/backend/pkg/response"
)

// parseID 解析路径参数中的正整数 id；非法时写入 400 响应并返回 false
// 调用方应在 ok=false 时直接 return。
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams,
			"参数校验失败", param+" 必须为正整数")
		return 0, false
	}
	return id, true
}

// bindJSON 绑定并校验请求体；失败时写入 400（超出大小限制时 413）并返回 false
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
		return false
	}
	return true
}

// bindQuery 绑定并校验查询参数；失败时写入 400 并返回 false
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
		return false
	}
	return true
}
