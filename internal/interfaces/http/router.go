package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/auth"
	"github.com/melisync/ventas-api/internal/application/usecase"
	appventa "github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.UseCase
	ClienteUC        *usecase.ClienteUseCase
	BodegaUC         *usecase.BodegaUseCase
	DisponibilidadUC *usecase.DisponibilidadUseCase
	CrearNotaUC      *appventa.CrearNotaUseCase
	CicloVidaUC      *appventa.CicloVidaUseCase
	EmisionUC        *appventa.EmisionUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Los nombres de las rutas de venta se
// conservan tal como los consume la UI histórica.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// Bodegas (protegido, solo lectura)
	bodegas := protected.Group("/bodegas")
	bodegaHandler := NewBodegaHandler(deps.BodegaUC)
	bodegas.Get("/", bodegaHandler.List)
	bodegas.Get("/:id", bodegaHandler.GetByID)

	// Disponibilidad de productos por bodega (protegido)
	disponibilidadHandler := NewDisponibilidadHandler(deps.DisponibilidadUC)
	protected.Get("/disponibilidad/:warehouseId", disponibilidadHandler.ListByBodega)

	// Notas de venta (protegido)
	ventaHandler := NewVentaHandler(deps.CrearNotaUC, deps.CicloVidaUC)
	protected.Post("/generated-sale-note/:status", ventaHandler.Create)
	protected.Get("/search-sale-by-folio/:companyId", ventaHandler.GetByFolio)
	protected.Get("/history-sale/:companyId", ventaHandler.List)
	protected.Patch("/sale-note-patch/:saleId/:status", ventaHandler.Patch)
	protected.Delete("/delete-history-sale/:companyId/:saleId",
		RequireRole(entity.RolAdmin), ventaHandler.Delete)

	// Emisión y documentos (protegido)
	documentoHandler := NewDocumentoHandler(deps.EmisionUC)
	protected.Put("/sale-note/:companyId/:saleId", documentoHandler.Emitir)
	protected.Post("/document-sale", documentoHandler.Subir)
	protected.Post("/document-sale/:companyId/:folioId/retry", documentoHandler.Reintentar)
	protected.Get("/document-sale/:companyId/:folioId", documentoHandler.Descargar)
	protected.Get("/history-sale-issue/:companyId", documentoHandler.ListarEmitidas)
}
