package logger

import (
	"encoding/json"
	"event-scan-api/internal/config"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var (
	mu        sync.RWMutex
	Logger    *log.Logger
	logLevel  LogLevel = INFO
	logFormat          = "text"
	logFile   *os.File
)

// ParseLevel 将配置中的级别字符串转换为 LogLevel
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	}
	return INFO, fmt.Errorf("invalid log level: %s", level)
}

// Setup 初始化日志系统
func Setup(cfg config.LogConfig) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	format := strings.ToLower(cfg.Format)
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	// 设置输出方式
	var writer io.Writer
	var file *os.File
	switch strings.ToLower(cfg.Output) {
	case "console":
		writer = os.Stdout
	case "file":
		file, err = openLogFile(cfg.FilePath)
		if err != nil {
			return err
		}
		writer = file
	case "both":
		file, err = openLogFile(cfg.FilePath)
		if err != nil {
			return err
		}
		writer = io.MultiWriter(os.Stdout, file)
	default:
		return fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	mu.Lock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	Logger = log.New(writer, "", 0)
	logLevel = level
	logFormat = format
	mu.Unlock()

	Info("Logger initialized successfully")
	return nil
}

// SetOutput 替换输出目标，主要用于测试
func SetOutput(w io.Writer, level LogLevel, format string) {
	mu.Lock()
	defer mu.Unlock()
	Logger = log.New(w, "", 0)
	logLevel = level
	logFormat = format
}

// Level 返回当前日志级别
func Level() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

// Close 关闭日志文件
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Logger = log.New(os.Stdout, "", 0)
	return err
}

// openLogFile 确保日志目录存在并以追加模式打开日志文件
func openLogFile(path string) (*os.File, error) {
	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}
	return file, nil
}

// formatMessage 格式化日志消息
func formatMessage(level LogLevel, msg string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if logFormat == "json" {
		line, err := json.Marshal(struct {
			Time  string `json:"time"`
			Level string `json:"level"`
			Msg   string `json:"msg"`
		}{timestamp, levelNames[level], msg})
		if err == nil {
			return string(line)
		}
	}
	return fmt.Sprintf("[%s] %s: %s", timestamp, levelNames[level], msg)
}

func output(level LogLevel, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if level < logLevel {
		return
	}
	l := Logger
	if l == nil {
		l = log.New(os.Stdout, "", 0)
	}
	l.Print(formatMessage(level, msg))
}

// 便捷方法
func Debug(args ...interface{}) { output(DEBUG, fmt.Sprint(args...)) }

func Debugf(format string, args ...interface{}) { output(DEBUG, fmt.Sprintf(format, args...)) }

func Info(args ...interface{}) { output(INFO, fmt.Sprint(args...)) }

func Infof(format string, args ...interface{}) { output(INFO, fmt.Sprintf(format, args...)) }

func Warn(args ...interface{}) { output(WARN, fmt.Sprint(args...)) }

func Warnf(format string, args ...interface{}) { output(WARN, fmt.Sprintf(format, args...)) }

func Error(args ...interface{}) { output(ERROR, fmt.Sprint(args...)) }

func Errorf(format string, args ...interface{}) { output(ERROR, fmt.Sprintf(format, args...)) }

func Fatal(args ...interface{}) {
	output(FATAL, fmt.Sprint(args...))
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	output(FATAL, fmt.Sprintf(format, args...))
	os.Exit(1)
}
