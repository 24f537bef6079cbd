// Package mapper 实体 ↔ DTO 的显式字段映射，不做按名称的自动匹配。
package mapper

import (
	"course-management/backend/internal/dto"
	"course-management/backend/internal/model"
)

// ── Course ──

// CourseToDTO 课程实体 → DTO；withStudents 为 true 时展开已加载的学生
func CourseToDTO(c *model.Course, withStudents bool) dto.CourseDTO {
	out := dto.CourseDTO{
		ID:   c.ID,
		Name: c.Name,
	}
	if withStudents {
		out.Students = StudentsToDTO(c.Students)
	}
	return out
}

// CoursesToDTO 批量转换（不展开学生）
func CoursesToDTO(courses []model.Course) []dto.CourseDTO {
	result := make([]dto.CourseDTO, 0, len(courses))
	for i := range courses {
		result = append(result, CourseToDTO(&courses[i], false))
	}
	return result
}

// CourseFromDTO DTO → 课程实体；客户端提交的 students 被忽略
func CourseFromDTO(d *dto.CourseDTO) *model.Course {
	return &model.Course{
		ID:   d.ID,
		Name: d.Name,
	}
}

// ── Student ──

// StudentToDTO 学生实体 → DTO，课程扁平化为 courseId
func StudentToDTO(s *model.Student) dto.StudentDTO {
	courseID := s.CourseID
	if courseID == 0 && s.Course != nil {
		courseID = s.Course.ID
	}
	return dto.StudentDTO{
		ID:       s.ID,
		Name:     s.Name,
		Email:    s.Email,
		CourseID: courseID,
	}
}

// StudentsToDTO 批量转换，结果永不为 nil
func StudentsToDTO(students []model.Student) []dto.StudentDTO {
	result := make([]dto.StudentDTO, 0, len(students))
	for i := range students {
		result = append(result, StudentToDTO(&students[i]))
	}
	return result
}

// StudentFromDTO DTO → 学生实体；只复制 name / email，课程由 Service 解析后挂载
func StudentFromDTO(d *dto.StudentDTO) *model.Student {
	return &model.Student{
		Name:  d.Name,
		Email: d.Email,
	}
}
