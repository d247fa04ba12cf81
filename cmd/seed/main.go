package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/infrastructure/mockdata"
	"github.com/vfg2006/traffic-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/traffic-dashboard-api/internal/config"
)

// seed aplica as migrações e grava no Postgres um conjunto de registros
// sintéticos gerado com a mesma configuração do modo mock
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de seed...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("ERRO ao aplicar migrações")
	}
	logrus.Info("Migrações aplicadas")

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	bundle := mockdata.NewGenerator(cfg.Mock).Generate()

	logrus.WithFields(logrus.Fields{
		"campaigns":       len(bundle.Campaigns),
		"biggest_changes": len(bundle.BiggestChanges),
		"trends":          len(bundle.Trends),
		"storefronts":     len(bundle.Storefronts),
		"kpis":            len(bundle.KPIs),
	}).Info("Registros gerados")

	if err := repository.NewDashboardRepository(conn).SaveBundle(ctx, &bundle); err != nil {
		logrus.WithError(err).Fatal("ERRO ao gravar registros")
	}

	logrus.Infof("Seed concluído em %v", time.Since(startTime))
}
