package repository

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "course-management/backend/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course  CourseRepository
	Student StudentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course:  NewCourseRepo(db),
		Student: NewStudentRepo(db),
	}
}

// ── 分页与排序 ──

// PageQuery 分页排序参数（Page 从 0 开始）
type PageQuery struct {
	Page      int
	Size      int
	SortField string
	Desc      bool
}

// Offset 计算偏移量；乘积溢出时取 math.MaxInt
func (q PageQuery) Offset() int {
	if q.Page <= 0 || q.Size <= 0 {
		return 0
	}
	if q.Page > math.MaxInt/q.Size {
		return math.MaxInt
	}
	return q.Page * q.Size
}

// Beyond 当前页是否已超出 total 条记录所能覆盖的页数
func (q PageQuery) Beyond(total int64) bool {
	if q.Size <= 0 {
		return false
	}
	pages := (total + int64(q.Size) - 1) / int64(q.Size)
	return int64(q.Page) >= pages
}

// sortColumns 对外排序字段（驼峰与下划线均可）→ 数据库列名
type sortColumns map[string]string

var (
	courseSortColumns = sortColumns{
		"id":         "id",
		"name":       "name",
		"createdAt":  "created_at",
		"created_at": "created_at",
		"updatedAt":  "updated_at",
		"updated_at": "updated_at",
	}
	studentSortColumns = sortColumns{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"courseId":   "course_id",
		"course_id":  "course_id",
		"createdAt":  "created_at",
		"created_at": "created_at",
		"updatedAt":  "updated_at",
		"updated_at": "updated_at",
	}
)

// orderBy 生成排序子句；非 id 排序追加 id 升序保证分页稳定
func (cols sortColumns) orderBy(q PageQuery) (clause.OrderBy, error) {
	field := strings.TrimSpace(q.SortField)
	if field == "" {
		field = "id"
	}
	col, ok := cols[field]
	if !ok {
		return clause.OrderBy{}, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidSortField, field)
	}

	order := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: col}, Desc: q.Desc},
	}}
	if col != "id" {
		order.Columns = append(order.Columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return order, nil
}
