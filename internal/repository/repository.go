// Package repository 各存储实现共享的错误和查询条件
package repository

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrSessionNotFound   = errors.New("session not found")
)

// PostFilter 为 0 的字段不参与过滤
type PostFilter struct {
	GroupID   uint64
	CreatorID uint64
}

// Page 页码从 1 开始，size 默认 20，上限 50
func Page(page, size int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return (page - 1) * size, size
}
