package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"event-scan-api/internal/pkg/errs"
)

// storeError 将 gorm 错误归类：唯一键冲突为 Conflict，其余为 Store；已分类的错误原样返回
func storeError(op string, conflictMsg string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errs.As(err); ok {
		return err
	}
	if conflictMsg != "" && isDuplicateKey(err) {
		return errs.Conflict(conflictMsg, err)
	}
	return errs.Store(op, err)
}

// isDuplicateKey 识别唯一约束冲突；TranslateError 之外按各驱动的错误文本兜底
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
