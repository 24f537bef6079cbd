package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-management/backend/internal/dto"
	"course-management/backend/internal/service"
	pkgerrors "course-management/backend/pkg/errors"
	"course-management/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程
// POST /courses/create
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseDTO
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// GetCourse 获取课程详情，withStudents=true 时展开学生
// GET /courses/get/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CourseGetRequest
	if !bindQuery(c, &req) {
		return
	}

	var (
		course *dto.CourseDTO
		err    error
	)
	if req.WithStudents {
		course, err = h.courseSvc.GetWithStudents(c.Request.Context(), id)
	} else {
		course, err = h.courseSvc.GetByID(c.Request.Context(), id)
	}
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ListCourses 分页获取课程
// GET /courses/getall?page=0&size=10&sortBy=id&sortDir=asc
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, page)
}

// UpdateCourse 更新课程名称
// PUT /courses/edit/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CourseDTO
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程（级联删除学生）
// DELETE /courses/del/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.NoContent(c, "Course deleted")
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	var cv *pkgerrors.ConstraintViolationError
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &cv) && cv.Kind == pkgerrors.ViolationUnique:
		response.Conflict(c, 11001, "课程名称已存在", cv.Error())
	case errors.As(err, &cv):
		response.ErrorWithDetails(c, statusForViolation(cv), 11002, "课程数据不合法", cv.Error())
	case errors.Is(err, pkgerrors.ErrInvalidSortField):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidSort, "排序字段不合法", err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// statusForViolation 唯一/外键冲突为 409，其余约束为 400
func statusForViolation(cv *pkgerrors.ConstraintViolationError) int {
	if cv.IsConflict() {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
