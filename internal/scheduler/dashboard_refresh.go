package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
)

//go:generate mockgen -source=dashboard_refresh.go -destination=mocks/refresher.go -package=mocks

// Refresher executa uma carga completa dos dados do dashboard
type Refresher interface {
	Refresh(ctx context.Context) error
}

// DashboardRefreshConfig representa a configuração do agendador de recarga do dashboard
type DashboardRefreshConfig struct {
	CronSchedule string
	Enabled      bool
	OnStartup    bool
}

// DashboardRefreshService recarrega periodicamente os registros do dashboard
type DashboardRefreshService struct {
	scheduler          *gocron.Scheduler
	config             DashboardRefreshConfig
	refresher          Refresher
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunError       string
	runs               int
}

func NewDashboardRefreshService(refresher Refresher, appConfig *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: appConfig.Refresh.CronSchedule,
		Enabled:      appConfig.Refresh.Enabled,
		OnStartup:    appConfig.Refresh.OnStartup,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
		"on_startup":    refreshConfig.OnStartup,
	}).Info("Configuração do agendador de recarga do dashboard carregada")

	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    refreshConfig,
		refresher: refresher,
	}
}

// Start faz a carga inicial (se configurada) e inicia o agendador
func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if s.config.OnStartup {
		go s.refreshDashboard(ctx)
	}

	if !s.config.Enabled {
		logrus.Info("Recarga periódica do dashboard desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga do dashboard")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshDashboard(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do dashboard: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshDashboard executa uma recarga, ignorando a chamada se outra já estiver em andamento
func (s *DashboardRefreshService) refreshDashboard(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do dashboard já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastRunStartedAt = time.Now()
	s.syncMutex.Unlock()

	err := s.refresher.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.runs++
	s.lastRunCompletedAt = time.Now()
	s.lastRunError = ""

	switch {
	case err == nil:
		logrus.WithField("duration", s.lastRunCompletedAt.Sub(s.lastRunStartedAt).String()).Info("Recarga do dashboard concluída")
	case errors.Is(err, store.ErrSuperseded):
		logrus.Info("Recarga do dashboard substituída por uma mais recente")
	default:
		s.lastRunError = err.Error()
		logrus.WithError(err).Error("Erro na recarga do dashboard")
	}
}

// TriggerManualSync dispara uma recarga imediata em background
func (s *DashboardRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do dashboard já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual do dashboard")
	go s.refreshDashboard(context.Background())
	return true
}

// IsRunning indica se há uma recarga em andamento
func (s *DashboardRefreshService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"on_startup":            s.config.OnStartup,
		"running":               s.syncRunning,
		"runs":                  s.runs,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_error":        s.lastRunError,
	}
}
