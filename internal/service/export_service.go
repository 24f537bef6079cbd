package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-management/backend/internal/repository"
	pkgerrors "course-management/backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 单个 Sheet：标题行为课程名，表头为 学号 / 姓名 / 邮箱，按学生 id 升序
//   - 无学生的课程仍导出仅含表头的文件
type ExportService interface {
	// ExportCourseRoster 导出课程学生名单，返回 buf、建议文件名
	ExportCourseRoster(ctx context.Context, courseID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const rosterSheet = "学生名单"

func (s *exportService) ExportCourseRoster(ctx context.Context, courseID int64) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByIDWithStudents(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.NotFound(kindCourse, courseID)
		}
		s.logger.Error("查询课程及学生失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(rosterSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(rosterSheet, "A", "A", 10)
	f.SetColWidth(rosterSheet, "B", "B", 20)
	f.SetColWidth(rosterSheet, "C", "C", 32)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(rosterSheet, "A1", fmt.Sprintf("%s（共 %d 人）", course.Name, len(course.Students)))
	f.MergeCell(rosterSheet, "A1", "C1")
	f.SetCellStyle(rosterSheet, "A1", "C1", headerStyle)

	// 表头
	f.SetCellValue(rosterSheet, cell("A", 2), "学号")
	f.SetCellValue(rosterSheet, cell("B", 2), "姓名")
	f.SetCellValue(rosterSheet, cell("C", 2), "邮箱")
	f.SetCellStyle(rosterSheet, "A2", "C2", headerStyle)

	// 数据行
	for i, st := range course.Students {
		row := 3 + i
		f.SetCellValue(rosterSheet, cell("A", row), st.ID)
		f.SetCellValue(rosterSheet, cell("B", row), st.Name)
		f.SetCellValue(rosterSheet, cell("C", row), st.Email)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学生名单_%s.xlsx", course.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
