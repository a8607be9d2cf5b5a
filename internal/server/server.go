package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handler registers a route group on the echo instance.
type Handler interface {
	Register(e *echo.Echo)
}

// Server is the admin HTTP surface: liveness, status and reload
// endpoints. It serves operators, not chat traffic.
type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(addr string, logger *slog.Logger, handlers ...Handler) *Server {
	if addr == "" {
		addr = ":8080"
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", c.RealIP()),
			)
			return nil
		},
	}))

	for _, h := range handlers {
		if h != nil {
			h.Register(e)
		}
	}

	return &Server{echo: e, addr: addr}
}

func (s *Server) Start() error                   { return s.echo.Start(s.addr) }
func (s *Server) Stop(ctx context.Context) error { return s.echo.Shutdown(ctx) }
