package service

import (
	"go.uber.org/zap"

	"course-management/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course  CourseService
	Student StudentService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Course:  NewCourseService(repo, logger),
		Student: NewStudentService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
