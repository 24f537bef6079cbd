package dto

// ── 学生模块 DTO ──

// StudentDTO 学生传输对象，所属课程扁平化为 courseId
type StudentDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"     binding:"required,max=255"`
	Email    string `json:"email"    binding:"required,max=255"`
	CourseID int64  `json:"courseId" binding:"required"`
}
