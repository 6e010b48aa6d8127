// migrate aplica o revierte las migraciones embebidas contra DATABASE_URL (o DB_*).
//
//	migrate up
//	migrate down --steps 1
//	migrate version
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/pflag"

	"github.com/jhoicas/gestao-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestao-api/pkg/config"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var dsn string
	var steps int

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&dsn, "dsn", "", "connection string (por defecto DATABASE_URL o DB_*)")
	flagSet.IntVar(&steps, "steps", 1, "migraciones a revertir con down")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("uso: migrate [--dsn DSN] [--steps N] up|down|version")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dsn == "" {
		dsn = cfg.DB.ConnectionString()
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd := flagSet.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		if steps <= 0 {
			return fmt.Errorf("--steps debe ser mayor que cero")
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info().Msg("sin migraciones aplicadas")
			return nil
		}
		if verr != nil {
			return verr
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		return nil
	default:
		return fmt.Errorf("comando desconocido %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("sin cambios")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("cmd", flagSet.Arg(0)).Msg("migraciones ejecutadas")
	return nil
}
