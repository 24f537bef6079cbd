package dto

// ── 课程模块 DTO ──

// CourseDTO 课程传输对象（请求与响应共用）
// students 仅在显式请求时填充；请求体中的 students 会被忽略
type CourseDTO struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"               binding:"required,max=255"`
	Students []StudentDTO `json:"students,omitempty"`
}

// CourseGetRequest 课程详情查询参数
type CourseGetRequest struct {
	WithStudents bool `form:"withStudents"`
}
