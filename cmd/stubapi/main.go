// stubapi 는 math-helper 클라이언트를 로컬에서 돌려보기 위한 원격 API 의 개발용 stub 이다.
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
	"golang.org/x/sync/errgroup"

	"math-helper/cmd/internal/logger"
	"math-helper/cmd/internal/trace"
	"math-helper/cmd/stubapi/router"
	"math-helper/cmd/stubapi/store"
	"math-helper/config"
)

const shutdownTimeout = 5 * time.Second

// @title           math-helper stub API
// @version         1.0
// @description     Development stub of the AI helper and articles API
func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level, os.Stdout)
	logger.SetServiceName("stubapi")
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.ErrorWithFields("stub api stopped with error", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig) error {
	r := router.New(store.NewMemory(), router.Options{Tokens: cfg.StubAPI.Tokens})

	srv := &http.Server{
		Addr:              cfg.StubAPI.Addr,
		Handler:           withCORS(r, cfg.StubAPI.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoWithFields("stub api listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoWithFields("shutting down stub api", logger.Fields{})
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// withCORS 는 브라우저 프론트엔드 개발 서버가 stub 을 직접 호출할 수 있게 한다.
// origins 가 비어 있으면 모든 origin 을 허용한다.
func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", trace.HeaderRequestID, trace.HeaderSpanID},
		ExposedHeaders: []string{trace.HeaderRequestID, trace.HeaderSpanID},
	}).Handler(h)
}
