package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-management/backend/config"
	"course-management/backend/internal/api/handler"
	"course-management/backend/internal/api/middleware"
	"course-management/backend/pkg/database"
	"course-management/backend/pkg/redis"
	"course-management/backend/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流中间件降级放行；db 为 nil 时健康检查跳过数据库探测
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if rl := cfg.Server.RateLimit; rl.Enabled {
		var limiter middleware.RateLimiter
		if rdb != nil {
			limiter = rdb
		}
		r.Use(middleware.RateLimit(limiter, rl.Limit, rl.Window, logger))
	}

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db))

	// 课程模块
	courses := r.Group("/courses")
	{
		courses.POST("/create", h.Course.CreateCourse)
		courses.GET("/get/:id", h.Course.GetCourse)
		courses.GET("/getall", h.Course.ListCourses)
		courses.PUT("/edit/:id", h.Course.UpdateCourse)
		courses.DELETE("/del/:id", h.Course.DeleteCourse)
		courses.GET("/export/:id", h.Export.ExportCourseRoster)
	}

	// 学生模块
	students := r.Group("/students")
	{
		students.POST("/create", h.Student.CreateStudent)
		students.GET("/get/:id", h.Student.GetStudent)
		students.GET("/getall", h.Student.ListStudents)
		students.GET("/getcourse/:courseId", h.Student.ListByCourse)
		students.PUT("/edit/:id", h.Student.UpdateStudent)
		students.DELETE("/del/:id", h.Student.DeleteStudent)
	}

	return r
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.Ping(ctx, db); err != nil {
				response.ServiceUnavailable(c, err.Error())
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
