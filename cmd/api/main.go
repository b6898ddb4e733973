package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appann "github.com/jhoicas/Condominio-api/internal/application/announcement"
	"github.com/jhoicas/Condominio-api/internal/application/auth"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	appinvite "github.com/jhoicas/Condominio-api/internal/application/invite"
	appprofile "github.com/jhoicas/Condominio-api/internal/application/profile"
	"github.com/jhoicas/Condominio-api/internal/application/provision"
	appreport "github.com/jhoicas/Condominio-api/internal/application/report"
	apptenant "github.com/jhoicas/Condominio-api/internal/application/tenant"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/blob"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/identity"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Condominio-api/internal/interfaces/http"
	"github.com/jhoicas/Condominio-api/pkg/config"
	"github.com/jhoicas/Condominio-api/pkg/logger"
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

	tenantRepo := postgres.NewTenantRepository(pool)
	inviteRepo := postgres.NewInviteRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	reportRepo := postgres.NewFaultReportRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)

	identityAdapter := identity.NewPostgresIdentity(pool)
	blobStore, err := blob.NewFSStore(cfg.Blob.Dir, cfg.Blob.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de blobs")
	}

	g := guard.New(profileRepo)
	provisioner := provision.New(identityAdapter, profileRepo, log)

	authUC := auth.New(identityAdapter, g, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tenantUC := apptenant.NewUseCase(tenantRepo, g)
	tenantLifecycle := apptenant.NewLifecycle(
		tenantRepo, inviteRepo, profileRepo, reportRepo, announcementRepo,
		identityAdapter, blobStore, g, log,
	)
	inviteUC := appinvite.New(inviteRepo, tenantRepo, g, provisioner, log)
	reportUC := appreport.New(reportRepo, g, blobStore)
	announcementUC := appann.New(announcementRepo, g, blobStore)
	profileUC := appprofile.New(profileRepo, g, provisioner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 << 20, // adjuntos multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Condominio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Los blobs publicados se sirven directamente desde disco.
	app.Static("/files", cfg.Blob.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		TenantUC:        tenantUC,
		TenantLifecycle: tenantLifecycle,
		InviteUC:        inviteUC,
		ReportUC:        reportUC,
		AnnouncementUC:  announcementUC,
		ProfileUC:       profileUC,
		JWTSecret:       cfg.JWT.Secret,
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
