package handler

import "course-management/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course  *CourseHandler
	Student *StudentHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:  NewCourseHandler(svc.Course),
		Student: NewStudentHandler(svc.Student),
		Export:  NewExportHandler(svc.Export),
	}
}
