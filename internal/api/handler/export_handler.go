package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"course-management/backend/internal/service"
	pkgerrors "course-management/backend/pkg/errors"
	"course-management/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCourseRoster 导出课程学生名单
// GET /courses/export/:id
func (h *ExportHandler) ExportCourseRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseRoster(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
