package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/api/handler"
	"github.com/vfg2006/traffic-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	onShutdown []func()
}

// Dependencies agrupa os serviços expostos pela API
type Dependencies struct {
	Store                handler.StateStore
	DashboardService     analyzing.DashboardService
	Authenticator        authenticating.Authenticator
	CampaignStatusWriter handler.CampaignStatusWriter
	CronJobs             handler.CronJobServices
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Dashboard(deps.Store, deps.DashboardService)...),
		router.WithRoutes(handler.Campaigns(deps.Store, deps.DashboardService, deps.CampaignStatusWriter)...),
		router.WithRoutes(handler.Trends(deps.Store, deps.DashboardService)...),
		router.WithRoutes(handler.Filters(deps.Store)...),
		router.WithRoutes(handler.CronJobs(deps.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(deps.Authenticator, config.Auth.Enabled),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
		onShutdown: []func(){deps.DashboardService.Close},
	}

	return srv, nil
}

// Handler expõe o handler HTTP completo, com middlewares
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	for _, cleanup := range s.onShutdown {
		cleanup()
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
