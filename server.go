package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/api"
	"event-scan-api/internal/config"
	"event-scan-api/internal/pkg/banner"
	"event-scan-api/internal/pkg/database"
	"event-scan-api/internal/pkg/logger"
	"event-scan-api/internal/router"
	"event-scan-api/internal/service"
)

// runServer 启动 HTTP 服务，收到 SIGINT/SIGTERM 后在超时时间内优雅退出
func runServer(ctx context.Context, cfg *config.Config) error {
	defer logger.Close()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Errorf("关闭数据库连接失败: %v", err)
			return
		}
		logger.Info("数据库连接已关闭")
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("数据库初始化完成")

	gin.SetMode(cfg.Server.Mode)
	if cfg.Server.Mode == gin.ReleaseMode {
		logger.Info("Gin设置为生产模式")
	} else {
		logger.Info("Gin运行在调试模式")
	}

	r := router.New(api.NewHandler(db, service.New(db)))
	logger.Info("路由设置完成")

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	banner.Print(os.Stdout, banner.BuildInfo{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
	}, addr, cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("服务器启动中，端口: %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("收到退出信号，正在关闭服务器")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器关闭失败: %w", err)
	}
	logger.Info("服务器已关闭")
	return nil
}
