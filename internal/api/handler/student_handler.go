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

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// CreateStudent 创建学生
// POST /students/create
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.StudentDTO
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, student)
}

// GetStudent 获取学生详情
// GET /students/get/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// ListStudents 分页获取学生
// GET /students/getall?page=0&size=10&sortBy=id&sortDir=asc
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, page)
}

// ListByCourse 获取某课程下的学生；课程不存在时返回空数组
// GET /students/getcourse/:courseId
func (h *StudentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}

	students, err := h.studentSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, students)
}

// UpdateStudent 更新学生
// PUT /students/edit/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.StudentDTO
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学生
// DELETE /students/del/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.NoContent(c, "Student deleted")
}

// handleStudentError 统一处理学生模块业务错误
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	var cv *pkgerrors.ConstraintViolationError
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &cv) && cv.Kind == pkgerrors.ViolationUnique:
		response.Conflict(c, 12001, "邮箱已被使用", cv.Error())
	case errors.As(err, &cv) && cv.Kind == pkgerrors.ViolationForeignKey:
		response.Conflict(c, 12002, "所属课程不存在", cv.Error())
	case errors.As(err, &cv):
		response.ErrorWithDetails(c, statusForViolation(cv), 12003, "学生数据不合法", cv.Error())
	case errors.Is(err, pkgerrors.ErrInvalidSortField):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidSort, "排序字段不合法", err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
