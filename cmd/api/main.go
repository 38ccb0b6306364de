package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/melisync/ventas-api/internal/application/auth"
	"github.com/melisync/ventas-api/internal/application/usecase"
	appventa "github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/internal/infrastructure/cache"
	infrapdf "github.com/melisync/ventas-api/internal/infrastructure/pdf"
	"github.com/melisync/ventas-api/internal/infrastructure/postgres"
	"github.com/melisync/ventas-api/internal/infrastructure/storage"
	httpRouter "github.com/melisync/ventas-api/internal/interfaces/http"
	"github.com/melisync/ventas-api/pkg/config"
	"github.com/melisync/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	bodegaRepo := postgres.NewBodegaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	notaRepo := postgres.NewNotaVentaRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Almacén de documentos: S3 (o compatible) si hay bucket, disco local si no.
	var almacen appventa.AlmacenDocumentos
	if cfg.Storage.Bucket != "" {
		almacen, err = storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén de objetos")
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("documentos en S3")
	} else {
		almacen, err = storage.NewLocalStore(cfg.Storage.LocalPath)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén local")
		}
		log.Info().Str("path", cfg.Storage.LocalPath).Msg("documentos en disco local")
	}

	// Caché de disponibilidad: Redis si está configurado, noop si no.
	var disponibilidadCache usecase.CacheDisponibilidad = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se continúa sin caché")
		} else {
			disponibilidadCache = redisCache
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de disponibilidad en Redis")
		}
	}

	authUC := auth.NewUseCase(usuarioRepo, cfg.JWT)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	bodegaUC := usecase.NewBodegaUseCase(bodegaRepo)
	disponibilidadUC := usecase.NewDisponibilidadUseCase(productoRepo, bodegaRepo, disponibilidadCache)
	crearNotaUC := appventa.NewCrearNotaUseCase(txRunner, clienteRepo, bodegaRepo, notaRepo)
	cicloVidaUC := appventa.NewCicloVidaUseCase(txRunner, notaRepo, clienteRepo)
	emisionUC := appventa.NewEmisionUseCase(
		notaRepo, clienteRepo, documentoRepo, infrapdf.NewMarotoGenerator(), almacen,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ClienteUC:        clienteUC,
		BodegaUC:         bodegaUC,
		DisponibilidadUC: disponibilidadUC,
		CrearNotaUC:      crearNotaUC,
		CicloVidaUC:      cicloVidaUC,
		EmisionUC:        emisionUC,
		JWTSecret:        cfg.JWT.Secret,
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
