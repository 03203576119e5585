// Package http собирает middleware и маршруты в gin-движок и запускает HTTP-сервер.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	handlers "github.com/aseptimu/keyed-store/internal/app/handlers/http"
	"github.com/aseptimu/keyed-store/internal/app/middleware"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	srv    *http.Server
	logger *zap.SugaredLogger
}

// NewRouter создаёт gin-движок с общей цепочкой middleware.
func NewRouter(logger *zap.SugaredLogger, h handlers.Handlers) *gin.Engine {
	r := gin.New()
	logger.Debug("Setting up middleware")
	r.Use(
		middleware.RequestID(),
		middleware.MiddlewareLogger(logger),
		middleware.GzipMiddleware(),
		// внутри gzip: ответ на панику пишется до закрытия gzip-потока
		middleware.Recovery(logger),
	)
	h.RegisterRoutes(r)
	return r
}

func NewServer(addr string, logger *zap.SugaredLogger, h handlers.Handlers) *Server {
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(logger, h),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve делает то же, что Run, на уже открытом listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infow("Starting HTTP server", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Infow("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("Error shutting down server", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
