package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/infrastructure/mockdata"
	"github.com/vfg2006/traffic-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/traffic-dashboard-api/internal/api"
	"github.com/vfg2006/traffic-dashboard-api/internal/api/handler"
	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/scheduler"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	logLevel, err := log.Setup(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s (ambiente %s)", logLevel, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		loader       store.Loader
		statusWriter handler.CampaignStatusWriter
	)

	switch cfg.DataSource.Kind {
	case config.DataSourcePostgres:
		if cfg.Database.Migrate {
			if err := postgres.Migrate(cfg.Database.DSN); err != nil {
				logrus.WithError(err).Fatal("Erro ao aplicar migrações")
			}
			logrus.Info("Migrações aplicadas com sucesso")
		}

		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		dashboardRepo := repository.NewDashboardRepository(pgConn)
		loader = dashboardRepo
		statusWriter = dashboardRepo
	default:
		loader = mockdata.NewGenerator(cfg.Mock)
	}

	logrus.WithField("data_source", cfg.DataSource.Kind).Info("Fonte de dados do dashboard configurada")

	dashboardStore := store.New(loader, domain.DefaultFilters(domain.DateRange{
		Start: cfg.Dashboard.DefaultStart,
		End:   cfg.Dashboard.DefaultEnd,
		Label: cfg.Dashboard.DefaultLabel,
	}))

	dashboardService, err := analyzing.NewService(cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	userRepo := repository.NewConfigUserRepository(cfg.Auth)
	authenticator := authenticating.NewService(userRepo, cfg.Auth)

	// Inicializa o agendador de recarga, que também faz a carga inicial
	dashboardRefreshService := scheduler.NewDashboardRefreshService(dashboardStore, cfg)
	if err := dashboardRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do dashboard")
	} else {
		logrus.Info("Agendador de recarga do dashboard iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Store:                dashboardStore,
		DashboardService:     dashboardService,
		Authenticator:        authenticator,
		CampaignStatusWriter: statusWriter,
		CronJobs: handler.CronJobServices{
			DashboardRefreshService: dashboardRefreshService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
