package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"event-scan-api/internal/config"
	"event-scan-api/internal/pkg/database"
	"event-scan-api/internal/pkg/logger"
	"event-scan-api/internal/service"
)

// 版本信息，编译时通过 ldflags 设置
var (
	Version    = "v0.1.0"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "event-scan-api",
		Usage:   "活动签到与工牌扫码后端服务",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			return runServer(ctx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "启动 HTTP 服务（默认）",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd.String("config"))
					if err != nil {
						return err
					}
					return runServer(ctx, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "执行数据库表结构迁移后退出",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd.String("config"))
					if err != nil {
						return err
					}
					return withDatabase(cfg, func(_ *service.Services) error {
						logger.Info("数据库迁移完成")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "写入演示用的参会者和活动",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "users",
						Value: 10,
						Usage: "生成的参会者数量",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd.String("config"))
					if err != nil {
						return err
					}
					return withDatabase(cfg, func(svc *service.Services) error {
						res, err := svc.Seed.Run(ctx, int(cmd.Int("users")))
						if err != nil {
							return fmt.Errorf("写入演示数据失败: %w", err)
						}
						logger.Infof("演示数据写入完成，新增用户 %d 个，新增活动 %d 个", res.Users, res.Activities)
						return nil
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("应用程序运行失败: %v", err)
	}
}

// loadConfig 解析配置文件路径、加载配置并初始化日志系统
func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.ResolvePath(explicit)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		return nil, fmt.Errorf("初始化日志系统失败: %w", err)
	}
	logger.Infof("配置加载完成: %s", path)
	return cfg, nil
}

// withDatabase 打开数据库并迁移，执行 fn 后关闭连接
func withDatabase(cfg *config.Config, fn func(svc *service.Services) error) error {
	defer logger.Close()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Errorf("关闭数据库连接失败: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	return fn(service.New(db))
}
