package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"tech-blog/cmd/api/router"
	"tech-blog/cmd/internal/app"
	"tech-blog/config"
	"tech-blog/internal/logger"
	"tech-blog/trace"
)

// @title           Tech Blog API
// @version         1.0
// @description     Browse, filter and search the tech blog post corpus
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.ErrorWithFields("failed to initialize app", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	// 첫 요청 전에 코퍼스를 미리 로딩한다. 실패해도 이후 요청에서 다시 시도한다.
	if idx, err := a.Repo.Index(ctx); err != nil {
		logger.WarnWithFields("initial content load failed", logger.Fields{"error": err.Error()})
	} else {
		logger.InfoWithFields("content ready", logger.Fields{"posts": idx.Len()})
	}

	if cfg.Content.Watch {
		if w := a.Watcher(); w != nil {
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.ErrorWithFields("content watcher stopped", logger.Fields{"error": err.Error()})
				}
			}()
		}
	}

	r := router.New(router.Dependencies{
		Posts:                a.Posts,
		Search:               a.Search,
		StatsPing:            a.StatsPing,
		SlowRequestThreshold: cfg.Server.SlowRequestThreshold,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", trace.HeaderRequestID},
		ExposedHeaders: []string{trace.HeaderRequestID, trace.HeaderSpanID},
		MaxAge:         600,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting api server", logger.Fields{"addr": cfg.Server.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("api server error", logger.Fields{"error": err.Error()})
			stop()
		}
	}()

	// 종료 신호 대기
	<-ctx.Done()
	logger.Log.Info("received shutdown signal, shutting down api server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("api server shutdown error", logger.Fields{"error": err.Error()})
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.WarnWithFields("stats store disconnect error", logger.Fields{"error": err.Error()})
	}
	logger.Log.Info("api server stopped")
}
