package http

import (
	"github.com/gofiber/fiber/v2"
	appann "github.com/jhoicas/Condominio-api/internal/application/announcement"
	"github.com/jhoicas/Condominio-api/internal/application/auth"
	appinvite "github.com/jhoicas/Condominio-api/internal/application/invite"
	appprofile "github.com/jhoicas/Condominio-api/internal/application/profile"
	appreport "github.com/jhoicas/Condominio-api/internal/application/report"
	apptenant "github.com/jhoicas/Condominio-api/internal/application/tenant"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	TenantUC        *apptenant.UseCase
	TenantLifecycle *apptenant.Lifecycle
	InviteUC        *appinvite.UseCase
	ReportUC        *appreport.UseCase
	AnnouncementUC  *appann.UseCase
	ProfileUC       *appprofile.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Invitaciones pre-registro (público: el llamador aún no tiene cuenta)
	inviteHandler := NewInviteHandler(deps.InviteUC)
	api.Post("/invites/validate", inviteHandler.Validate)
	api.Post("/invites/redeem", inviteHandler.Redeem)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil propio
	profileHandler := NewProfileHandler(deps.ProfileUC)
	profile := protected.Group("/profile")
	profile.Get("/", profileHandler.Me)
	profile.Put("/", profileHandler.Update)
	profile.Delete("/", profileHandler.Delete)

	// Tenants (solo admin)
	tenantHandler := NewTenantHandler(deps.TenantUC, deps.TenantLifecycle)
	tenants := protected.Group("/tenants")
	tenants.Post("/", RequireRole(entity.RoleAdmin), tenantHandler.Create)
	tenants.Get("/", RequireRole(entity.RoleAdmin), tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", RequireRole(entity.RoleAdmin), tenantHandler.Update)
	tenants.Delete("/:id", RequireRole(entity.RoleAdmin), tenantHandler.Delete)
	tenants.Post("/:id/invite", RequireRole(entity.RoleAdmin), inviteHandler.GenerateTenant)

	// Invitaciones dentro del tenant
	invites := protected.Group("/invites")
	invites.Get("/", inviteHandler.List)
	invites.Post("/resident", RequireRole(entity.RoleHousingCompany, entity.RolePropertyManager), inviteHandler.GenerateResident)
	invites.Post("/management", RequireRole(entity.RoleHousingCompany), inviteHandler.GenerateManagement)
	invites.Post("/service", RequireRole(entity.RoleHousingCompany, entity.RolePropertyManager), inviteHandler.GenerateService)
	invites.Delete("/:id", inviteHandler.Delete)

	// Partes de avería
	reportHandler := NewFaultReportHandler(deps.ReportUC)
	reports := protected.Group("/fault-reports")
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.List)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Put("/:id", reportHandler.Update)
	reports.Post("/:id/images", reportHandler.AddImage)
	reports.Get("/:id/allowed-statuses", reportHandler.AllowedStatuses)
	reports.Post("/:id/status", reportHandler.Transition)

	// Anuncios
	announcementHandler := NewAnnouncementHandler(deps.AnnouncementUC)
	announcements := protected.Group("/announcements")
	announcements.Post("/", announcementHandler.Create)
	announcements.Get("/", announcementHandler.List)
	announcements.Get("/:id", announcementHandler.GetByID)
	announcements.Put("/:id", announcementHandler.Update)
	announcements.Delete("/:id", announcementHandler.Delete)
	announcements.Post("/:id/attachments", announcementHandler.AddAttachment)
	announcements.Delete("/:id/attachments/:attachmentId", announcementHandler.DeleteAttachment)
}
