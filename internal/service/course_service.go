package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-management/backend/internal/dto"
	"course-management/backend/internal/mapper"
	"course-management/backend/internal/model"
	"course-management/backend/internal/repository"
	pkgerrors "course-management/backend/pkg/errors"
)

const kindCourse = "Course"

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CourseDTO) (*dto.CourseDTO, error)
	GetByID(ctx context.Context, id int64) (*dto.CourseDTO, error)
	// GetWithStudents 返回课程并展开其学生列表
	GetWithStudents(ctx context.Context, id int64) (*dto.CourseDTO, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.Page[dto.CourseDTO], error)
	// Update 只覆盖 name，id 以路径参数为准
	Update(ctx context.Context, id int64, req *dto.CourseDTO) (*dto.CourseDTO, error)
	// Delete 级联删除该课程下的所有学生
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CourseDTO) (*dto.CourseDTO, error) {
	course := mapper.CourseFromDTO(req)
	course.ID = 0 // id 由数据库生成

	if err := model.Validate(course); err != nil {
		return nil, err
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("name", course.Name), zap.Error(err))
		return nil, err
	}

	out := mapper.CourseToDTO(course, false)
	return &out, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	course, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	out := mapper.CourseToDTO(course, false)
	return &out, nil
}

func (s *courseService) GetWithStudents(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	course, err := s.repo.Course.GetByIDWithStudents(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindCourse, id)
		}
		s.logger.Error("查询课程及学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	out := mapper.CourseToDTO(course, true)
	return &out, nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.PageRequest) (*dto.Page[dto.CourseDTO], error) {
	q := toPageQuery(req)

	courses, total, err := s.repo.Course.List(ctx, q)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrInvalidSortField) {
			s.logger.Error("列出课程失败", zap.Error(err))
		}
		return nil, err
	}

	return dto.NewPage(mapper.CoursesToDTO(courses), total, q.Page, q.Size), nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id int64, req *dto.CourseDTO) (*dto.CourseDTO, error) {
	course, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name
	if err := model.Validate(course); err != nil {
		return nil, err
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindCourse, id)
		}
		s.logger.Error("更新课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	out := mapper.CourseToDTO(course, false)
	return &out, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.findCourse(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("课程已删除", zap.Int64("id", id))
	return nil
}

// ── 内部辅助 ──

// findCourse 查询课程，不存在时返回 NotFound
func (s *courseService) findCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindCourse, id)
		}
		s.logger.Error("查询课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// toPageQuery 分页请求 → 存储层查询参数（已套用默认值）
func toPageQuery(req *dto.PageRequest) repository.PageQuery {
	if req == nil {
		req = &dto.PageRequest{}
	}
	return repository.PageQuery{
		Page:      req.GetPage(),
		Size:      req.GetSize(),
		SortField: req.GetSortBy(),
		Desc:      req.IsDescending(),
	}
}
