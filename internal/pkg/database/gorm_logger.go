package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"event-scan-api/internal/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger 将 gorm 的日志转发到应用日志
type gormLogger struct {
	level gormlogger.LogLevel
}

// NewGormLogger 根据应用日志级别创建 gorm 日志适配器
func NewGormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	switch logger.Level() {
	case logger.DEBUG:
		level = gormlogger.Info
	case logger.ERROR, logger.FATAL:
		level = gormlogger.Error
	}
	return &gormLogger{level: level}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Infof("[gorm] "+msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Warnf("[gorm] "+msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Errorf("[gorm] "+msg, args...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Errorf("[gorm] %v [%v] rows=%d %s", err, elapsed, rows, sql)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warnf("[gorm] slow sql >= %v [%v] rows=%d %s", slowQueryThreshold, elapsed, rows, sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Debugf("[gorm] [%v] rows=%d %s", elapsed, rows, sql)
	}
}
