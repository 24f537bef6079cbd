package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-management/backend/internal/model"
	pkgerrors "course-management/backend/pkg/errors"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	// GetByIDWithStudents 同 GetByID，并按 id 升序预加载学生
	GetByIDWithStudents(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context, q PageQuery) ([]model.Course, int64, error)
	Update(ctx context.Context, course *model.Course) error
	// Delete 在同一事务内先删除该课程下的学生，再删除课程
	Delete(ctx context.Context, id int64) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(course).Error
	return pkgerrors.FromDB(err)
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDWithStudents(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Students", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, q PageQuery) ([]model.Course, int64, error) {
	order, err := courseSortColumns.orderBy(q)
	if err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Beyond(total) {
		return []model.Course{}, total, nil
	}

	if err := r.db.WithContext(ctx).Clauses(order).
		Offset(q.Offset()).Limit(q.Size).
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	res := r.db.WithContext(ctx).
		Select("*").
		Omit(clause.Associations).
		Updates(course)
	if res.Error != nil {
		return pkgerrors.FromDB(res.Error)
	}
	// 行已被并发删除时不做 upsert
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 数据库层亦有 ON DELETE CASCADE，这里显式删除保证不依赖方言
		if err := tx.Where("course_id = ?", id).Delete(&model.Student{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Course{}).Error
	})
}
