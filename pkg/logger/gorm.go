package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 超过该耗时的 SQL 记为慢查询
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger 将 GORM 日志桥接到 Zap
type GormLogger struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

// NewGormLogger 创建 GORM 日志适配器，级别跟随应用日志级别
func NewGormLogger(logger *zap.Logger, appLevel string) *GormLogger {
	return &GormLogger{
		logger: logger.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		level:  GormLevel(appLevel),
	}
}

// GormLevel 应用日志级别 → GORM 日志级别
func GormLevel(appLevel string) gormlogger.LogLevel {
	lvl, err := zapcore.ParseLevel(appLevel)
	if err != nil {
		return gormlogger.Warn
	}
	switch {
	case lvl <= zapcore.DebugLevel:
		return gormlogger.Info
	case lvl <= zapcore.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace 记录每条 SQL；记录不存在不算错误（业务层会转换为 404）
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error("SQL 执行失败",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn("慢查询",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug("SQL",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	}
}
