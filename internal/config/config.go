package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Mode            string `yaml:"mode"`             // debug, release, test
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // 优雅退出等待秒数
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // mysql, postgres, sqlite
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	Path         string `yaml:"path"`    // sqlite 数据库文件路径
	SSLMode      string `yaml:"sslmode"` // 仅 postgres 使用
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type LogConfig struct {
	Level    string `yaml:"level"`     // 日志级别: debug, info, warn, error
	Format   string `yaml:"format"`    // 日志格式: json, text
	Output   string `yaml:"output"`    // 输出方式: console, file, both
	FilePath string `yaml:"file_path"` // 日志文件路径，轮转交给 logrotate
}

// ResolvePath 确定配置文件路径：显式路径 > CONFIG_PATH > config/config.yaml > config.yaml
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p, nil
	}

	possiblePaths := []string{
		filepath.Join("config", "config.yaml"),
		"config.yaml",
	}
	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("未指定配置文件且未找到默认配置文件(config/config.yaml或config.yaml)")
}

// Load 读取并解析配置文件，随后填充默认值
func Load(configPath string) (*Config, error) {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", configPath, err)
	}

	return Parse(configFile)
}

// Parse 解析 YAML 内容
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.Database.Password = expandEnv(cfg.Database.Password)
	cfg.Database.Username = expandEnv(cfg.Database.Username)
	cfg.Database.Host = expandEnv(cfg.Database.Host)

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回全部使用默认值的配置
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	// 服务配置默认值
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// 数据库配置默认值
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	switch cfg.Database.Driver {
	case "mysql":
		if cfg.Database.Port == "" {
			cfg.Database.Port = "3306"
		}
	case "postgres":
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	case "sqlite":
		if cfg.Database.Path == "" {
			cfg.Database.Path = "data/events.db"
		}
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "127.0.0.1"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}

	// 日志配置默认值
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "console"
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = "logs/app.log"
	}
}

// Validate 校验无法通过默认值修正的配置项
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("无效的运行模式: %s", c.Server.Mode)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout 不能为负数")
	}
	return nil
}

// expandEnv 展开 ${VAR} 形式的环境变量占位符
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
