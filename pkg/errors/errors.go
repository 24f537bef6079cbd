package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 资源不存在（errors.Is 匹配所有 *NotFoundError）
	ErrNotFound = errors.New("resource not found")
	// ErrConstraintViolation 违反唯一/非空/外键/长度约束（errors.Is 匹配所有 *ConstraintViolationError）
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidSortField 排序字段不是该实体的可排序属性
	ErrInvalidSortField = errors.New("invalid sort field")
)

// ── NotFound ──

// NotFoundError 指定实体的 id 不存在
type NotFoundError struct {
	Kind string
	ID   int64
}

// NotFound 创建 NotFoundError，消息格式 "<Kind> not found with id: <id>"
func NotFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ── ConstraintViolation ──

// Violation 约束类别
type Violation string

const (
	ViolationUnique     Violation = "unique"
	ViolationRequired   Violation = "required"
	ViolationTooLong    Violation = "too_long"
	ViolationForeignKey Violation = "foreign_key"
	ViolationInvalid    Violation = "invalid"
)

// ConstraintViolationError 保存时违反约束
type ConstraintViolationError struct {
	Kind  Violation
	Field string // 可能为空（数据库未返回列名时）
	Err   error
}

// NewConstraintViolation 创建 ConstraintViolationError
func NewConstraintViolation(kind Violation, field string, err error) error {
	return &ConstraintViolationError{Kind: kind, Field: field, Err: err}
}

func (e *ConstraintViolationError) Error() string {
	msg := "constraint violation: " + string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }

func (e *ConstraintViolationError) Is(target error) bool { return target == ErrConstraintViolation }

// IsConflict 唯一/外键冲突对应 409，其余约束对应 400
func (e *ConstraintViolationError) IsConflict() bool {
	return e.Kind == ViolationUnique || e.Kind == ViolationForeignKey
}

// ── 数据库错误翻译 ──

// PostgreSQL SQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
)

// FromDB 将存储层写入错误翻译为 ConstraintViolation；无法识别的错误原样返回
func FromDB(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewConstraintViolation(ViolationUnique, pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			return NewConstraintViolation(ViolationForeignKey, pgErr.ConstraintName, err)
		case pgNotNullViolation:
			return NewConstraintViolation(ViolationRequired, pgErr.ColumnName, err)
		case pgStringTooLong:
			return NewConstraintViolation(ViolationTooLong, pgErr.ColumnName, err)
		}
		return err
	}

	// 开启 TranslateError 后 GORM 方言统一翻译的错误（sqlite 等）
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewConstraintViolation(ViolationUnique, "", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewConstraintViolation(ViolationForeignKey, "", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return NewConstraintViolation(ViolationInvalid, "", err)
	}
	return err
}
