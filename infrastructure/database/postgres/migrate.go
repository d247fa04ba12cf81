package postgres

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/migrations"
)

// Migrate aplica as migrations embutidas até migrations.Version
func Migrate(dsn string) error {
	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errors.Wrap(err, "erro ao abrir migrations embutidas")
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, dsn)
	if err != nil {
		return errors.Wrap(err, "erro ao iniciar migrate")
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.Errorf("banco de dados em estado dirty na versão %d", current)
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"from": current,
		"to":   migrations.Version,
	}).Info("Migrations aplicadas")

	return nil
}
