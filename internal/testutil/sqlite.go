// Package testutil 测试用的内存 SQLite 数据库，表结构与 PostgreSQL 迁移保持一致。
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sqliteSchema = []string{
	`CREATE TABLE courses (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       VARCHAR(255) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE students (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL UNIQUE,
		course_id  INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX idx_students_course_id ON students(course_id)`,
}

// OpenSQLite 为当前测试创建独立的内存数据库（开启外键与错误翻译），测试结束自动关闭
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取 sql.DB 失败: %v", err)
	}
	// 单连接：共享缓存下串行化写入
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("建表失败: %v", err)
		}
	}
	return db
}
