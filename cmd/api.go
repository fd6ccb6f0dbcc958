package cmd

import (
	"context"
	"fmt"

	"goodwill-valuation/internal/delivery/http"

	"go.uber.org/zap"
)

type HTTPServer struct {
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("Starting HTTP server", zap.Int("port", s.appDep.cfg.API.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)

	s.SetupRoutes()

	return s.appDep.echo.Start(address)
}

// Stop drains in-flight requests for at most the configured shutdown timeout.
func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), s.appDep.cfg.API.ShutdownTimeout)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Warn("Timeout while stopping HTTP server, forcing shutdown", zap.Error(err))
		return s.appDep.echo.Close()
	}
	s.appDep.log.Info("HTTP server stopped successfully")
	return nil
}

func (s *HTTPServer) SetupRoutes() {
	s.handler.SetupRoutes()
}
