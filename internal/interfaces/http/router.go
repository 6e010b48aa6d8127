package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gestao-api/internal/application/analytics"
	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
	"github.com/jhoicas/gestao-api/internal/application/venda"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

// Options configuración del servidor fiber.
type Options struct {
	Name           string
	RequestTimeout time.Duration
	CORSOrigins    string
}

// NewApp crea la app fiber con el manejo de errores y los middlewares comunes.
func NewApp(opts Options, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	}
	app.Use(RequestLogger(log))
	if opts.RequestTimeout > 0 {
		app.Use(Timeout(opts.RequestTimeout))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC   *usecase.ClienteUseCase
	MaterialUC  *usecase.MaterialUseCase
	ProdutoUC   *usecase.ProdutoUseCase
	VendedorUC  *usecase.VendedorUseCase
	VendaUC     *venda.UseCase
	OrcamentoUC *orcamento.UseCase
	DashboardUC *analytics.DashboardUseCase
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	clientes := api.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// rutas fijas antes de /:id
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Get("/resumo", materialHandler.Resumo)
	materials.Post("/bulk-delete", materialHandler.BulkDelete)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	produtos := api.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Get("/", produtoHandler.List)
	produtos.Post("/", produtoHandler.Create)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Put("/:id", produtoHandler.Update)
	produtos.Delete("/:id", produtoHandler.Delete)

	vendedores := api.Group("/vendedores")
	vendedorHandler := NewVendedorHandler(deps.VendedorUC)
	vendedores.Get("/", vendedorHandler.List)
	vendedores.Post("/", vendedorHandler.Create)
	vendedores.Get("/:id", vendedorHandler.GetByID)
	vendedores.Put("/:id", vendedorHandler.Update)
	vendedores.Delete("/:id", vendedorHandler.Delete)

	vendas := api.Group("/vendas")
	vendaHandler := NewVendaHandler(deps.VendaUC)
	vendas.Get("/", vendaHandler.List)
	vendas.Post("/", vendaHandler.Create)
	vendas.Get("/:id", vendaHandler.GetByID)
	vendas.Put("/:id", vendaHandler.UpdateStatus)
	vendas.Delete("/:id", vendaHandler.Delete)

	orcamentos := api.Group("/orcamentos")
	orcamentoHandler := NewOrcamentoHandler(deps.OrcamentoUC)
	orcamentos.Get("/", orcamentoHandler.List)
	orcamentos.Post("/", orcamentoHandler.Create)
	orcamentos.Get("/resumo", orcamentoHandler.Resumo)
	orcamentos.Get("/:id/pdf", orcamentoHandler.PDF)
	orcamentos.Get("/:id", orcamentoHandler.GetByID)
	orcamentos.Put("/:id", orcamentoHandler.Update)
	orcamentos.Delete("/:id", orcamentoHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/resumo", dashboardHandler.GetResumo)
}

// listFilter lee ?q, ?type, ?status y ?lowStock.
func listFilter(c *fiber.Ctx) (dto.ListFilter, error) {
	var f dto.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return f, errInvalidQuery
	}
	return f, nil
}
