package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"course-management/backend/internal/model"
	"course-management/backend/internal/repository"
	pkgerrors "course-management/backend/pkg/errors"
)

// mockStore 课程与学生共享的内存存储，模拟唯一约束、外键与级联删除
type mockStore struct {
	courses    map[int64]*model.Course
	students   map[int64]*model.Student
	courseSeq  int64
	studentSeq int64
	// failWith 非空时所有读写直接返回该错误
	failWith error
	// dropBeforeUpdate 为 true 时 Update 前先删掉目标行，模拟并发删除
	dropBeforeUpdate bool
}

func newMockStore() *mockStore {
	return &mockStore{
		courses:  make(map[int64]*model.Course),
		students: make(map[int64]*model.Student),
	}
}

func (s *mockStore) nextCourseID() int64 {
	s.courseSeq++
	return s.courseSeq
}

func (s *mockStore) nextStudentID() int64 {
	s.studentSeq++
	return s.studentSeq
}

func newMockRepository(store *mockStore) *repository.Repository {
	return &repository.Repository{
		Course:  &mockCourseRepo{store: store},
		Student: &mockStudentRepo{store: store},
	}
}

// sortByField 模拟存储层的排序字段白名单
func sortByField[T any](items []T, field string, desc bool, key func(T, string) (string, int64, bool)) error {
	if field == "" {
		field = "id"
	}
	var zero T
	if _, _, ok := key(zero, field); !ok {
		return fmt.Errorf("%w: %s", pkgerrors.ErrInvalidSortField, field)
	}
	sort.SliceStable(items, func(i, j int) bool {
		si, ni, _ := key(items[i], field)
		sj, nj, _ := key(items[j], field)
		less := ni < nj
		if si != sj {
			less = si < sj
		}
		if desc {
			return !less
		}
		return less
	})
	return nil
}

func paginate[T any](items []T, q repository.PageQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + q.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	store *mockStore
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	for _, c := range m.store.courses {
		if c.Name == course.Name {
			return pkgerrors.NewConstraintViolation(pkgerrors.ViolationUnique, "name", gorm.ErrDuplicatedKey)
		}
	}
	course.ID = m.store.nextCourseID()
	cp := *course
	m.store.courses[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if m.store.failWith != nil {
		return nil, m.store.failWith
	}
	c, ok := m.store.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCourseRepo) GetByIDWithStudents(ctx context.Context, id int64) (*model.Course, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Students, _ = (&mockStudentRepo{store: m.store}).ListByCourseID(ctx, id)
	return c, nil
}

func (m *mockCourseRepo) List(_ context.Context, q repository.PageQuery) ([]model.Course, int64, error) {
	if m.store.failWith != nil {
		return nil, 0, m.store.failWith
	}
	all := make([]model.Course, 0, len(m.store.courses))
	for _, c := range m.store.courses {
		all = append(all, *c)
	}
	err := sortByField(all, q.SortField, q.Desc, func(c model.Course, field string) (string, int64, bool) {
		switch field {
		case "id":
			return "", c.ID, true
		case "name":
			return c.Name, c.ID, true
		}
		return "", 0, false
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, q), int64(len(all)), nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	if m.store.dropBeforeUpdate {
		delete(m.store.courses, course.ID)
	}
	if _, ok := m.store.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, c := range m.store.courses {
		if id != course.ID && c.Name == course.Name {
			return pkgerrors.NewConstraintViolation(pkgerrors.ViolationUnique, "name", gorm.ErrDuplicatedKey)
		}
	}
	cp := *course
	cp.Students = nil
	m.store.courses[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	for sid, s := range m.store.students {
		if s.CourseID == id {
			delete(m.store.students, sid)
		}
	}
	delete(m.store.courses, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	store *mockStore
}

func (m *mockStudentRepo) checkConstraints(student *model.Student) error {
	if _, ok := m.store.courses[student.CourseID]; !ok {
		return pkgerrors.NewConstraintViolation(pkgerrors.ViolationForeignKey, "course_id", gorm.ErrForeignKeyViolated)
	}
	for id, s := range m.store.students {
		if id != student.ID && s.Email == student.Email {
			return pkgerrors.NewConstraintViolation(pkgerrors.ViolationUnique, "email", gorm.ErrDuplicatedKey)
		}
	}
	return nil
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	if err := m.checkConstraints(student); err != nil {
		return err
	}
	student.ID = m.store.nextStudentID()
	cp := *student
	cp.Course = nil
	m.store.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if m.store.failWith != nil {
		return nil, m.store.failWith
	}
	s, ok := m.store.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockStudentRepo) List(_ context.Context, q repository.PageQuery) ([]model.Student, int64, error) {
	if m.store.failWith != nil {
		return nil, 0, m.store.failWith
	}
	all := make([]model.Student, 0, len(m.store.students))
	for _, s := range m.store.students {
		all = append(all, *s)
	}
	err := sortByField(all, q.SortField, q.Desc, func(s model.Student, field string) (string, int64, bool) {
		switch field {
		case "id":
			return "", s.ID, true
		case "name":
			return s.Name, s.ID, true
		case "email":
			return s.Email, s.ID, true
		}
		return "", 0, false
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, q), int64(len(all)), nil
}

func (m *mockStudentRepo) ListByCourseID(_ context.Context, courseID int64) ([]model.Student, error) {
	if m.store.failWith != nil {
		return nil, m.store.failWith
	}
	result := make([]model.Student, 0)
	for _, s := range m.store.students {
		if s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	if m.store.dropBeforeUpdate {
		delete(m.store.students, student.ID)
	}
	if _, ok := m.store.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if err := m.checkConstraints(student); err != nil {
		return err
	}
	cp := *student
	cp.Course = nil
	m.store.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) error {
	if m.store.failWith != nil {
		return m.store.failWith
	}
	delete(m.store.students, id)
	return nil
}
