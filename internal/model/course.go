package model

// Course 课程表 — 对应 courses
type Course struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"                 json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex"   json:"name" validate:"required,max=255"`
	BaseModel

	// 关联（外键在 students.course_id，删除课程级联删除学生）
	Students []Student `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"students,omitempty" validate:"-"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
