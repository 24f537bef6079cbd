package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"course-management/backend/internal/dto"
	pkgerrors "course-management/backend/pkg/errors"
	"course-management/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CourseService ──

type mockCourseService struct {
	createResult *dto.CourseDTO
	createErr    error
	getResult    *dto.CourseDTO
	getErr       error
	withStudents bool
	listResult   *dto.Page[dto.CourseDTO]
	listErr      error
	listReq      *dto.PageRequest
	updateResult *dto.CourseDTO
	updateErr    error
	updateID     int64
	deleteErr    error
}

func (m *mockCourseService) Create(_ context.Context, _ *dto.CourseDTO) (*dto.CourseDTO, error) {
	return m.createResult, m.createErr
}
func (m *mockCourseService) GetByID(_ context.Context, _ int64) (*dto.CourseDTO, error) {
	return m.getResult, m.getErr
}
func (m *mockCourseService) GetWithStudents(_ context.Context, _ int64) (*dto.CourseDTO, error) {
	m.withStudents = true
	return m.getResult, m.getErr
}
func (m *mockCourseService) List(_ context.Context, req *dto.PageRequest) (*dto.Page[dto.CourseDTO], error) {
	m.listReq = req
	return m.listResult, m.listErr
}
func (m *mockCourseService) Update(_ context.Context, id int64, _ *dto.CourseDTO) (*dto.CourseDTO, error) {
	m.updateID = id
	return m.updateResult, m.updateErr
}
func (m *mockCourseService) Delete(_ context.Context, _ int64) error {
	return m.deleteErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	createResult   *dto.StudentDTO
	createErr      error
	getResult      *dto.StudentDTO
	getErr         error
	listResult     *dto.Page[dto.StudentDTO]
	listErr        error
	byCourseResult []dto.StudentDTO
	byCourseErr    error
	updateResult   *dto.StudentDTO
	updateErr      error
	deleteErr      error
}

func (m *mockStudentService) Create(_ context.Context, _ *dto.StudentDTO) (*dto.StudentDTO, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) GetByID(_ context.Context, _ int64) (*dto.StudentDTO, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) List(_ context.Context, _ *dto.PageRequest) (*dto.Page[dto.StudentDTO], error) {
	return m.listResult, m.listErr
}
func (m *mockStudentService) ListByCourse(_ context.Context, _ int64) ([]dto.StudentDTO, error) {
	return m.byCourseResult, m.byCourseErr
}
func (m *mockStudentService) Update(_ context.Context, _ int64, _ *dto.StudentDTO) (*dto.StudentDTO, error) {
	return m.updateResult, m.updateErr
}
func (m *mockStudentService) Delete(_ context.Context, _ int64) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportCourseRoster(_ context.Context, _ int64) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, route, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r := gin.New()
	r.Handle(method, route, h)
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// CourseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCourseHandler_Create_Success(t *testing.T) {
	mock := &mockCourseService{createResult: &dto.CourseDTO{ID: 1, Name: "Math"}}
	h := NewCourseHandler(mock)

	w := serve("POST", "/courses/create", "/courses/create", jsonBody(dto.CourseDTO{Name: "Math"}), h.CreateCourse)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var got dto.CourseDTO
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != 1 || got.Name != "Math" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "students") {
		t.Errorf("students should be omitted: %s", w.Body.String())
	}
}

func TestCourseHandler_Create_BadRequest(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	cases := map[string]io.Reader{
		"invalid json":  bytes.NewReader([]byte("invalid json")),
		"missing name":  jsonBody(map[string]string{}),
		"name too long": jsonBody(dto.CourseDTO{Name: strings.Repeat("x", 256)}),
	}
	for name, body := range cases {
		w := serve("POST", "/courses/create", "/courses/create", body, h.CreateCourse)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
		if resp := parseResponse(w); resp.Code != response.CodeInvalidParams {
			t.Errorf("%s: expected code %d, got %d", name, response.CodeInvalidParams, resp.Code)
		}
	}
}

func TestCourseHandler_Create_Duplicate(t *testing.T) {
	mock := &mockCourseService{
		createErr: pkgerrors.NewConstraintViolation(pkgerrors.ViolationUnique, "name", errors.New("dup")),
	}
	h := NewCourseHandler(mock)

	w := serve("POST", "/courses/create", "/courses/create", jsonBody(dto.CourseDTO{Name: "Math"}), h.CreateCourse)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 || resp.Details == "" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestCourseHandler_Get_NotFound(t *testing.T) {
	mock := &mockCourseService{getErr: pkgerrors.NotFound("Course", 2)}
	h := NewCourseHandler(mock)

	w := serve("GET", "/courses/get/:id", "/courses/get/2", nil, h.GetCourse)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.String() != "Course not found with id: 2" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("expected text/plain, got %s", w.Header().Get("Content-Type"))
	}
}

func TestCourseHandler_Get_BadID(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	for _, id := range []string{"abc", "0", "-3"} {
		w := serve("GET", "/courses/get/:id", "/courses/get/"+id, nil, h.GetCourse)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id=%s: expected 400, got %d", id, w.Code)
		}
	}
}

func TestCourseHandler_Get_WithStudents(t *testing.T) {
	mock := &mockCourseService{getResult: &dto.CourseDTO{
		ID: 1, Name: "Math",
		Students: []dto.StudentDTO{{ID: 1, Name: "samira", Email: "samira@gmail.com", CourseID: 1}},
	}}
	h := NewCourseHandler(mock)

	w := serve("GET", "/courses/get/:id", "/courses/get/1?withStudents=true", nil, h.GetCourse)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !mock.withStudents {
		t.Error("expected GetWithStudents to be called")
	}
	if !strings.Contains(w.Body.String(), `"courseId":1`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCourseHandler_List(t *testing.T) {
	mock := &mockCourseService{listResult: dto.NewPage([]dto.CourseDTO{{ID: 3, Name: "Art"}}, 21, 2, 10)}
	h := NewCourseHandler(mock)

	w := serve("GET", "/courses/getall", "/courses/getall?page=2&size=10&sortBy=name&sortDir=DESC", nil, h.ListCourses)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq == nil || mock.listReq.Page != 2 || mock.listReq.SortBy != "name" || !mock.listReq.IsDescending() {
		t.Errorf("query not bound: %+v", mock.listReq)
	}

	var page dto.Page[dto.CourseDTO]
	json.Unmarshal(w.Body.Bytes(), &page)
	if page.TotalElements != 21 || page.TotalPages != 3 || !page.Last || page.Number != 2 {
		t.Errorf("unexpected page: %s", w.Body.String())
	}
}

func TestCourseHandler_List_Errors(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})
	w := serve("GET", "/courses/getall", "/courses/getall?page=-1", nil, h.ListCourses)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative page: expected 400, got %d", w.Code)
	}

	h = NewCourseHandler(&mockCourseService{listErr: pkgerrors.ErrInvalidSortField})
	w = serve("GET", "/courses/getall", "/courses/getall?sortBy=title", nil, h.ListCourses)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid sort: expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeInvalidSort {
		t.Errorf("expected code %d, got %d", response.CodeInvalidSort, resp.Code)
	}

	h = NewCourseHandler(&mockCourseService{listErr: errors.New("db down")})
	w = serve("GET", "/courses/getall", "/courses/getall", nil, h.ListCourses)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("storage error: expected 500, got %d", w.Code)
	}
}

func TestCourseHandler_Update(t *testing.T) {
	mock := &mockCourseService{updateResult: &dto.CourseDTO{ID: 5, Name: "Algebra"}}
	h := NewCourseHandler(mock)

	w := serve("PUT", "/courses/edit/:id", "/courses/edit/5", jsonBody(dto.CourseDTO{Name: "Algebra"}), h.UpdateCourse)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.updateID != 5 {
		t.Errorf("expected path id 5, got %d", mock.updateID)
	}

	mock.updateErr = pkgerrors.NotFound("Course", 5)
	w = serve("PUT", "/courses/edit/:id", "/courses/edit/5", jsonBody(dto.CourseDTO{Name: "Algebra"}), h.UpdateCourse)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCourseHandler_Delete(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})
	w := serve("DELETE", "/courses/del/:id", "/courses/del/1", nil, h.DeleteCourse)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}

	h = NewCourseHandler(&mockCourseService{deleteErr: pkgerrors.NotFound("Course", 1)})
	w = serve("DELETE", "/courses/del/:id", "/courses/del/1", nil, h.DeleteCourse)
	if w.Code != http.StatusNotFound || w.Body.String() != "Course not found with id: 1" {
		t.Errorf("expected 404 with message, got %d %q", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_Create(t *testing.T) {
	mock := &mockStudentService{createResult: &dto.StudentDTO{ID: 1, Name: "samira", Email: "samira@gmail.com", CourseID: 1}}
	h := NewStudentHandler(mock)

	body := dto.StudentDTO{Name: "samira", Email: "samira@gmail.com", CourseID: 1}
	w := serve("POST", "/students/create", "/students/create", jsonBody(body), h.CreateStudent)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"courseId":1`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestStudentHandler_Create_Errors(t *testing.T) {
	body := dto.StudentDTO{Name: "samira", Email: "samira@gmail.com", CourseID: 9}

	cases := []struct {
		name string
		err  error
		want int
		code int
	}{
		{"course not found", pkgerrors.NotFound("Course", 9), http.StatusNotFound, 0},
		{"duplicate email", pkgerrors.NewConstraintViolation(pkgerrors.ViolationUnique, "email", nil), http.StatusConflict, 12001},
		{"course vanished", pkgerrors.NewConstraintViolation(pkgerrors.ViolationForeignKey, "course_id", nil), http.StatusConflict, 12002},
		{"too long", pkgerrors.NewConstraintViolation(pkgerrors.ViolationTooLong, "name", nil), http.StatusBadRequest, 12003},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewStudentHandler(&mockStudentService{createErr: tc.err})
			w := serve("POST", "/students/create", "/students/create", jsonBody(body), h.CreateStudent)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.code != 0 {
				if resp := parseResponse(w); resp.Code != tc.code {
					t.Errorf("expected code %d, got %d", tc.code, resp.Code)
				}
			} else if w.Body.String() != "Course not found with id: 9" {
				t.Errorf("unexpected body: %q", w.Body.String())
			}
		})
	}
}

func TestStudentHandler_Create_MissingCourseID(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{})
	w := serve("POST", "/students/create", "/students/create",
		jsonBody(map[string]string{"name": "samira", "email": "samira@gmail.com"}), h.CreateStudent)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestStudentHandler_ListByCourse(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{byCourseResult: []dto.StudentDTO{}})

	w := serve("GET", "/students/getcourse/:courseId", "/students/getcourse/77", nil, h.ListByCourse)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}

	w = serve("GET", "/students/getcourse/:courseId", "/students/getcourse/x", nil, h.ListByCourse)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestStudentHandler_GetUpdateDelete(t *testing.T) {
	s := &dto.StudentDTO{ID: 1, Name: "samira", Email: "samira@gmail.com", CourseID: 1}
	mock := &mockStudentService{getResult: s, updateResult: s}
	h := NewStudentHandler(mock)

	if w := serve("GET", "/students/get/:id", "/students/get/1", nil, h.GetStudent); w.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", w.Code)
	}
	if w := serve("PUT", "/students/edit/:id", "/students/edit/1", jsonBody(s), h.UpdateStudent); w.Code != http.StatusOK {
		t.Errorf("update: expected 200, got %d", w.Code)
	}
	if w := serve("DELETE", "/students/del/:id", "/students/del/1", nil, h.DeleteStudent); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}

	mock.getErr = pkgerrors.NotFound("Student", 1)
	w := serve("GET", "/students/get/:id", "/students/get/1", nil, h.GetStudent)
	if w.Code != http.StatusNotFound || w.Body.String() != "Student not found with id: 1" {
		t.Errorf("expected 404 with message, got %d %q", w.Code, w.Body.String())
	}
}

func TestStudentHandler_List(t *testing.T) {
	mock := &mockStudentService{listResult: dto.NewPage[dto.StudentDTO](nil, 0, 0, 10)}
	h := NewStudentHandler(mock)

	w := serve("GET", "/students/getall", "/students/getall", nil, h.ListStudents)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"content":[]`) || !strings.Contains(w.Body.String(), `"empty":true`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportCourseRoster(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "学生名单_Math.xlsx"}
	h := NewExportHandler(mock)

	w := serve("GET", "/courses/export/:id", "/courses/export/1", nil, h.ExportCourseRoster)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != xlsxContentType {
		t.Errorf("unexpected content type: %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
		t.Errorf("expected attachment disposition, got %s", w.Header().Get("Content-Disposition"))
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestExportHandler_ExportCourseRoster_NotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: pkgerrors.NotFound("Course", 4)})

	w := serve("GET", "/courses/export/:id", "/courses/export/4", nil, h.ExportCourseRoster)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
