package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/schema"

	pkgerrors "course-management/backend/pkg/errors"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// MaxNameLength name / email 列的长度上限（varchar(255)）
const MaxNameLength = 255

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	naming   = schema.NamingStrategy{}
)

// Validate 按 validate 标签校验实体，失败时返回 *errors.ConstraintViolationError
func Validate(entity interface{}) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	// 只报告第一个失败字段
	fe := verrs[0]
	kind := pkgerrors.ViolationInvalid
	switch fe.Tag() {
	case "required":
		kind = pkgerrors.ViolationRequired
	case "max":
		kind = pkgerrors.ViolationTooLong
	}
	return pkgerrors.NewConstraintViolation(kind, naming.ColumnName("", fe.StructField()), err)
}
