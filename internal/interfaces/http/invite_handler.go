package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Condominio-api/internal/application/dto"
	appinvite "github.com/jhoicas/Condominio-api/internal/application/invite"
)

// InviteHandler maneja las peticiones HTTP de invitaciones: emisión y gestión
// (protegidas) y validación/canje (públicas, pre-registro).
type InviteHandler struct {
	uc *appinvite.UseCase
}

// NewInviteHandler construye el handler inyectando el caso de uso.
func NewInviteHandler(uc *appinvite.UseCase) *InviteHandler {
	return &InviteHandler{uc: uc}
}

// GenerateTenant godoc
// @Summary      Emitir la invitación fundacional de un tenant
// @Description  Reemplaza cualquier código fundacional sin usar anterior.
// @Tags         invites
// @Produce      json
// @Param        id  path  string  true  "ID del tenant"
// @Success      201  {object}  dto.InviteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/invite [post]
func (h *InviteHandler) GenerateTenant(c *fiber.Ctx) error {
	out, err := h.uc.GenerateTenantInvite(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenerateResident godoc
// @Summary      Emitir invitación de residente (edificio + apartamento)
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateInviteRequest  true  "Destino del residente"
// @Success      201   {object}  dto.InviteResponse
// @Router       /api/invites/resident [post]
func (h *InviteHandler) GenerateResident(c *fiber.Ctx) error {
	var in dto.GenerateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.GenerateResidentInvite(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenerateManagement godoc
// @Summary      Emitir invitación de administración (property_manager o maintenance)
// @Description  Si ya hay un código de administración activo se devuelve ese
// @Description  mismo en lugar de emitir otro. property_manager exige edificio.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateInviteRequest  false  "Rol destino y edificio"
// @Success      201   {object}  dto.InviteResponse
// @Router       /api/invites/management [post]
func (h *InviteHandler) GenerateManagement(c *fiber.Ctx) error {
	var in dto.GenerateInviteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.GenerateManagementInvite(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenerateService godoc
// @Summary      Emitir invitación de empresa de servicios
// @Tags         invites
// @Produce      json
// @Success      201  {object}  dto.InviteResponse
// @Router       /api/invites/service [post]
func (h *InviteHandler) GenerateService(c *fiber.Ctx) error {
	out, err := h.uc.GenerateServiceInvite(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar invitaciones del tenant del llamador
// @Tags         invites
// @Produce      json
// @Param        kind  query  string  false  "Filtrar por clase"  Enums(tenant, resident, management, service)
// @Success      200   {array}  dto.InviteResponse
// @Router       /api/invites [get]
func (h *InviteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c), c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Revocar una invitación sin usar
// @Tags         invites
// @Param        id  path  string  true  "ID de la invitación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invites/{id} [delete]
func (h *InviteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validate godoc
// @Summary      Validar un código antes del registro (público)
// @Description  Idempotente: no consume el código ni muta estado.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateInviteRequest  true  "Código"
// @Success      200   {object}  dto.InviteSummary
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invites/validate [post]
func (h *InviteHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Validate(in.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Redeem godoc
// @Summary      Canjear un código creando la cuenta (público)
// @Description  Consume el código exactamente una vez; ante un canje
// @Description  concurrente solo uno de los dos obtiene la cuenta.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RedeemInviteRequest  true  "Código + datos de la cuenta"
// @Success      201   {object}  dto.RedeemInviteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invites/redeem [post]
func (h *InviteHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Redeem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
