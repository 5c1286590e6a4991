package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/onboarding/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	listener        net.Listener
}

// Server wraps http.Server with signal handling and graceful shutdown.
//
// Request contexts derive from a base context that is cancelled when shutdown
// begins, so long-lived SSE streams end instead of holding the server open.
type Server struct {
	cfg *config

	mu   sync.Mutex
	srv  *http.Server
	stop context.CancelFunc
	once sync.Once
}

func New(opts ...Option) *Server {
	cfg := &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Run serves handler until ctx is done, SIGINT/SIGTERM arrives or the
// listener fails. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	baseCtx, stopStreams := context.WithCancel(context.WithoutCancel(ctx))
	srv := &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		stopStreams()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	s.srv = srv
	s.stop = stopStreams
	s.mu.Unlock()

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if s.cfg.listener != nil {
			errCh <- srv.Serve(s.cfg.listener)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	s.cfg.logger.InfoContext(ctx, "http server started", slog.String("addr", s.cfg.addr))

	var runErr error
	select {
	case <-sigCtx.Done():
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.cfg.logger.ErrorContext(ctx, "http server shutdown", logger.Error(err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
		stopStreams()
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	s.cfg.logger.InfoContext(ctx, "http server stopped")
	return nil
}

// Shutdown cancels open streams and drains in-flight requests.
// Repeated calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, stop := s.srv, s.stop
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		stop()
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
	})

	if err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
