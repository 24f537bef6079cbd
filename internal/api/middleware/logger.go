package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// entityKeys 路由分组 → 路径参数 id 在日志中的字段名
var entityKeys = map[string]string{
	"/courses/":  "course_id",
	"/students/": "student_id",
}

// entityFields 将路径参数转为业务字段，如 /courses/get/:id → course_id
func entityFields(c *gin.Context) []zap.Field {
	route := c.FullPath()
	fields := make([]zap.Field, 0, 2)
	if id := c.Param("id"); id != "" {
		for prefix, key := range entityKeys {
			if strings.HasPrefix(route, prefix) {
				fields = append(fields, zap.String(key, id))
				break
			}
		}
	}
	if courseID := c.Param("courseId"); courseID != "" {
		fields = append(fields, zap.String("course_id", courseID))
	}
	return fields
}

// Logger 请求日志中间件（基于 Zap 结构化日志）
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("request_id", GetRequestID(c)),
		}
		fields = append(fields, entityFields(c)...)

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		if statusCode >= 500 {
			logger.Error("请求处理失败", fields...)
		} else if statusCode >= 400 {
			logger.Warn("客户端错误", fields...)
		} else {
			logger.Info("请求完成", fields...)
		}
	}
}
