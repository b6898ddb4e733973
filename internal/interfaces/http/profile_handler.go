package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Condominio-api/internal/application/dto"
	appprofile "github.com/jhoicas/Condominio-api/internal/application/profile"
)

// ProfileHandler maneja las peticiones HTTP del perfil propio.
type ProfileHandler struct {
	uc *appprofile.UseCase
}

// NewProfileHandler construye el handler inyectando el caso de uso.
func NewProfileHandler(uc *appprofile.UseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar campos no privilegiados del perfil propio
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProfileResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja la cuenta propia (identidad + perfil)
// @Tags         profile
// @Success      204
// @Router       /api/profile [delete]
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSelf(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
