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

const kindStudent = "Student"

// StudentService 学生业务接口
type StudentService interface {
	// Create 所属课程不存在时返回 NotFound("Course")，且不写入任何数据
	Create(ctx context.Context, req *dto.StudentDTO) (*dto.StudentDTO, error)
	GetByID(ctx context.Context, id int64) (*dto.StudentDTO, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.Page[dto.StudentDTO], error)
	// ListByCourse 不校验课程是否存在，课程缺失时返回空列表
	ListByCourse(ctx context.Context, courseID int64) ([]dto.StudentDTO, error)
	Update(ctx context.Context, id int64, req *dto.StudentDTO) (*dto.StudentDTO, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.StudentDTO) (*dto.StudentDTO, error) {
	course, err := s.findCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	student := mapper.StudentFromDTO(req)
	student.CourseID = course.ID
	student.Course = course

	if err := model.Validate(student); err != nil {
		return nil, err
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败",
			zap.String("email", student.Email),
			zap.Int64("course_id", course.ID),
			zap.Error(err),
		)
		return nil, err
	}

	out := mapper.StudentToDTO(student)
	return &out, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	student, err := s.findStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	out := mapper.StudentToDTO(student)
	return &out, nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.PageRequest) (*dto.Page[dto.StudentDTO], error) {
	q := toPageQuery(req)

	students, total, err := s.repo.Student.List(ctx, q)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrInvalidSortField) {
			s.logger.Error("列出学生失败", zap.Error(err))
		}
		return nil, err
	}

	return dto.NewPage(mapper.StudentsToDTO(students), total, q.Page, q.Size), nil
}

func (s *studentService) ListByCourse(ctx context.Context, courseID int64) ([]dto.StudentDTO, error) {
	students, err := s.repo.Student.ListByCourseID(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课程学生失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return mapper.StudentsToDTO(students), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id int64, req *dto.StudentDTO) (*dto.StudentDTO, error) {
	student, err := s.findStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	course, err := s.findCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Email = req.Email
	student.CourseID = course.ID
	student.Course = course

	if err := model.Validate(student); err != nil {
		return nil, err
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindStudent, id)
		}
		s.logger.Error("更新学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	out := mapper.StudentToDTO(student)
	return &out, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.findStudent(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func (s *studentService) findStudent(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindStudent, id)
		}
		s.logger.Error("查询学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *studentService) findCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(kindCourse, id)
		}
		s.logger.Error("查询课程失败", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}
