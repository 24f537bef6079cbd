package model

// Student 学生表 — 对应 students
type Student struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"               json:"id"`
	Name     string `gorm:"type:varchar(255);not null"             json:"name"      validate:"required,max=255"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"     validate:"required,max=255"`
	CourseID int64  `gorm:"not null;index"                         json:"course_id" validate:"required"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty" validate:"-"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
