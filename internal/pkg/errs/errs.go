// Package errs 定义服务层统一的错误分类，由 API 层映射为 HTTP 状态码
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Error 携带分类、对外消息以及可选的附加字段
type Error struct {
	Kind    Kind
	Msg     string
	Err     error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// With 追加一个对外暴露的字段，返回自身便于链式调用
func (e *Error) With(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Msg: msg, Err: err}
}

// Store 包装底层存储错误，msg 仅写入日志
func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

// KindOf 返回错误链中第一个 *Error 的分类，非 *Error 视为存储错误
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// As 是 errors.As 的简写
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
