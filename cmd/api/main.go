package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/gestao-api/internal/application/analytics"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
	"github.com/jhoicas/gestao-api/internal/application/venda"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/internal/infrastructure/broker"
	"github.com/jhoicas/gestao-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestao-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestao-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestao-api/internal/interfaces/http"
	"github.com/jhoicas/gestao-api/pkg/config"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores repositorios y runners de transacción de un backend concreto.
type stores struct {
	clientes    repository.ClienteRepository
	materiais   repository.MaterialRepository
	produtos    repository.ProdutoRepository
	vendedores  repository.VendedorRepository
	vendas      repository.VendaRepository
	orcamentos  repository.OrcamentoRepository
	vendaTx     venda.TxRunner
	orcamentoTx orcamento.TxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	// Broker: sin AMQP_URL los eventos se descartan.
	var publisher events.Publisher = events.Nop{}
	if cfg.Broker.Enabled() {
		pub, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer pub.Close()
		publisher = pub
		log.Info().Str("queue", cfg.Broker.Queue).Msg("publicando eventos")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	app := httpRouter.NewApp(httpRouter.Options{
		Name:           cfg.App.Name,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gestão Marcenaria API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClienteUC:   usecase.NewClienteUseCase(st.clientes),
		MaterialUC:  usecase.NewMaterialUseCase(st.materiais, publisher, log),
		ProdutoUC:   usecase.NewProdutoUseCase(st.produtos),
		VendedorUC:  usecase.NewVendedorUseCase(st.vendedores, st.vendas),
		VendaUC:     venda.NewUseCase(st.vendaTx, st.vendas, publisher, log),
		OrcamentoUC: orcamento.NewUseCase(st.orcamentoTx, st.orcamentos, pdfGenerator),
		DashboardUC: analytics.NewDashboardUseCase(st.vendas, st.clientes, st.materiais),
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores elige el backend según DB_DRIVER. Postgres aplica las migraciones si DB_AUTO_MIGRATE.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.InMemory() {
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			clientes:    s.Clientes(),
			materiais:   s.Materiais(),
			produtos:    s.Produtos(),
			vendedores:  s.Vendedores(),
			vendas:      s.Vendas(),
			orcamentos:  s.Orcamentos(),
			vendaTx:     s,
			orcamentoTx: s,
			close:       func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	tx := postgres.NewTxRunner(pool)
	return &stores{
		clientes:    postgres.NewClienteRepository(pool),
		materiais:   postgres.NewMaterialRepository(pool),
		produtos:    postgres.NewProdutoRepository(pool),
		vendedores:  postgres.NewVendedorRepository(pool),
		vendas:      postgres.NewVendaRepository(pool),
		orcamentos:  postgres.NewOrcamentoRepository(pool),
		vendaTx:     tx,
		orcamentoTx: tx,
		close:       pool.Close,
	}, nil
}
