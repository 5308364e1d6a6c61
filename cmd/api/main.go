// @title        Kaluuu Express API
// @version      1.0
// @description  Back-office de carga: facturas con pagos, seguimiento de envíos, packing lists y notificaciones.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/docs"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/bootstrap"
	infrapdf "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/pdf"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/postgres"
	httpRouter "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/interfaces/http"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/config"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Driver == "postgres" {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if err := migrator.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}

	backend, err := bootstrap.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()

	clock := ports.SystemClock{Location: cfg.App.Location()}
	services := bootstrap.NewServices(backend, cfg, bootstrap.NewPusher(cfg.Push, log), clock, log)

	if cfg.Store.Driver == "memory" {
		if n, err := services.Rates.Seed(ctx); err != nil {
			log.Warn().Err(err).Msg("cargar catálogo de tarifas")
		} else if n > 0 {
			log.Info().Int("tarifas", n).Msg("catálogo de tarifas inicial cargado")
		}
	}

	// Relay de eventos pendientes del outbox
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		if err := services.Relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("relay de outbox detenido")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kaluuu Express API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := backend.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:     services.Ledger,
		Tracking:   services.Tracking,
		Packing:    services.Packing,
		Rates:      services.Rates,
		Notify:     services.Notify,
		InvoicePDF: infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	<-relayDone

	log.Info().Msg("aplicación detenida")
}
