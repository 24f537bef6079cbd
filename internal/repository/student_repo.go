package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-management/backend/internal/model"
	pkgerrors "course-management/backend/pkg/errors"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context, q PageQuery) ([]model.Student, int64, error)
	// ListByCourseID 课程下无学生或课程不存在时返回空切片
	ListByCourseID(ctx context.Context, courseID int64) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int64) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(student).Error
	return pkgerrors.FromDB(err)
}

func (r *studentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, q PageQuery) ([]model.Student, int64, error) {
	order, err := studentSortColumns.orderBy(q)
	if err != nil {
		return nil, 0, err
	}

	var students []model.Student
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Beyond(total) {
		return []model.Student{}, total, nil
	}

	if err := r.db.WithContext(ctx).Clauses(order).
		Offset(q.Offset()).Limit(q.Size).
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) ListByCourseID(ctx context.Context, courseID int64) ([]model.Student, error) {
	students := make([]model.Student, 0)
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	res := r.db.WithContext(ctx).
		Select("*").
		Omit(clause.Associations).
		Updates(student)
	if res.Error != nil {
		return pkgerrors.FromDB(res.Error)
	}
	// 行已被并发删除时不做 upsert
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Student{}).Error
}
