package dto

import "strings"

// ── 分页请求 ──

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "id"
	DefaultSortDir  = "asc"
)

// PageRequest 通用分页排序参数（page 从 0 开始）
type PageRequest struct {
	Page    int    `form:"page"    binding:"omitempty,min=0"`
	Size    int    `form:"size"    binding:"omitempty,min=0"` // 超过 MaxPageSize 时截断
	SortBy  string `form:"sortBy"  binding:"omitempty,max=64"`
	SortDir string `form:"sortDir" binding:"omitempty,max=16"`
}

// GetPage 获取页码（含默认值）
func (p *PageRequest) GetPage() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page
}

// GetSize 获取每页数量（含默认值）
func (p *PageRequest) GetSize() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return MaxPageSize
	}
	return p.Size
}

// GetSortBy 获取排序字段（含默认值）
func (p *PageRequest) GetSortBy() string {
	if p.SortBy == "" {
		return DefaultSortBy
	}
	return p.SortBy
}

// IsDescending 仅 "asc"（不区分大小写）为升序，其余取值一律降序
func (p *PageRequest) IsDescending() bool {
	dir := p.SortDir
	if dir == "" {
		dir = DefaultSortDir
	}
	return !strings.EqualFold(dir, "asc")
}

// ── 分页响应 ──

// Page 分页结果
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// NewPage 根据当前页内容与总数构建分页结果
func NewPage[T any](content []T, total int64, page, size int) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           page,
		Size:             size,
		NumberOfElements: len(content),
		First:            page == 0,
		Last:             page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}
