// Package apperr 业务错误分类，请求边界统一翻译成 HTTP 状态码
package apperr

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Status 对应的 HTTP 状态码
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error 带错误码和字段级信息的业务错误
type Error struct {
	Kind   Kind
	Code   string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.String() + ": " + e.Code
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(e.Fields[k], ","))
	}
	return e.Kind.String() + ": " + e.Code + " (" + strings.Join(parts, "; ") + ")"
}

// Is 按 Kind+Code 比较，方便 errors.Is(err, apperr.Validation("", "password_mismatch"))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Add 追加字段错误
func (e *Error) Add(field, msg string) *Error {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// Validation 字段为空时只带错误码
func Validation(field, code string) *Error {
	e := &Error{Kind: KindValidation, Code: code}
	if field != "" {
		e.Add(field, code)
	}
	return e
}

func Authentication(code string) *Error {
	return &Error{Kind: KindAuthentication, Code: code}
}

func Authorization(field, code string) *Error {
	e := &Error{Kind: KindAuthorization, Code: code}
	if field != "" {
		e.Add(field, code)
	}
	return e
}

func NotFound(code string) *Error {
	return &Error{Kind: KindNotFound, Code: code}
}

// As 取出 *Error，非业务错误返回 nil
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf 非业务错误返回 0
func KindOf(err error) Kind {
	if e := As(err); e != nil {
		return e.Kind
	}
	return 0
}

// 常用错误码
const (
	CodeInvalid             = "invalid"
	CodePasswordMismatch    = "password_mismatch"
	CodeWeakPassword        = "weak_password"
	CodeDuplicateEmail      = "duplicate_email"
	CodeDuplicateUsername   = "duplicate_username"
	CodeInvalidPassword     = "invalid_password"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeInvalidToken        = "invalid_or_expired_token"
	CodeNotAuthenticated    = "not_authenticated"
	CodePermissionDenied    = "permission_denied"
	CodeNotGroupOwner       = "not_group_owner"
	CodeDoesNotExist        = "does_not_exist"
	CodeUserNotFound        = "user_not_found"
	CodeGroupNotFound       = "group_not_found"
	CodePostNotFound        = "post_not_found"
	CodeRequired            = "required"
	CodeTooLong             = "too_long"
	CodeInvalidUsernameChar = "invalid_username"
)
