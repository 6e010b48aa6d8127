// seed importa el catálogo inicial de materiales desde una planilla CSV.
//
// Uso: go run ./cmd/seed --file materiais.csv [--latin1] [--dry-run]
//
// Cada fila pasa por la misma validación que POST /api/materials; las filas
// rechazadas se informan y no detienen la importación.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
	"github.com/jhoicas/gestao-api/internal/domain"
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
	var file string
	var latin1, dryRun bool

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&file, "file", "materiais.csv", "planilla CSV separada por ';'")
	flagSet.BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	flagSet.BoolVar(&dryRun, "dry-run", false, "solo valida la planilla, no escribe")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	rows, err := readCatalog(f, latin1)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	log.Info().Str("file", file).Int("filas", len(rows)).Msg("planilla leída")
	if dryRun {
		return nil
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := usecase.NewMaterialUseCase(postgres.NewMaterialRepository(pool), events.Nop{}, log)
	var ok, rejected int
	for i, in := range rows {
		if _, err := uc.Create(ctx, in); err != nil {
			if !errors.Is(err, domain.ErrInvalidInput) {
				return fmt.Errorf("fila %d (%s): %w", i+2, in.Name, err)
			}
			rejected++
			log.Warn().Int("fila", i+2).Str("name", in.Name).Err(err).Msg("fila rechazada")
			continue
		}
		ok++
	}
	log.Info().Int("importados", ok).Int("rechazados", rejected).Msg("importación terminada")
	return nil
}
