package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	appann "github.com/jhoicas/Condominio-api/internal/application/announcement"
	"github.com/jhoicas/Condominio-api/internal/application/dto"
)

// maxAttachmentBytes tamaño máximo aceptado por adjunto de anuncio.
const maxAttachmentBytes = 20 << 20

// AnnouncementHandler maneja las peticiones HTTP para anuncios.
type AnnouncementHandler struct {
	uc *appann.UseCase
}

// NewAnnouncementHandler construye el handler inyectando el caso de uso.
func NewAnnouncementHandler(uc *appann.UseCase) *AnnouncementHandler {
	return &AnnouncementHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar anuncio
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAnnouncementRequest  true  "Datos del anuncio"
// @Success      201   {object}  dto.AnnouncementResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAnnouncementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar anuncios del tenant
// @Tags         announcements
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AnnouncementListResponse
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener anuncio por ID
// @Tags         announcements
// @Produce      json
// @Param        id   path  string  true  "ID del anuncio"
// @Success      200  {object}  dto.AnnouncementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id} [get]
func (h *AnnouncementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar anuncio
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del anuncio"
// @Param        body  body  dto.UpdateAnnouncementRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AnnouncementResponse
// @Router       /api/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar anuncio con sus adjuntos
// @Tags         announcements
// @Param        id  path  string  true  "ID del anuncio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddAttachment godoc
// @Summary      Adjuntar archivo a un anuncio (multipart)
// @Tags         announcements
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del anuncio"
// @Param        file  formData  file    true  "Archivo"
// @Success      200   {object}  dto.AnnouncementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/announcements/{id}/attachments [post]
func (h *AnnouncementHandler) AddAttachment(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'file' requerido"})
	}
	if fh.Size > maxAttachmentBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "el adjunto supera el tamaño máximo"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddAttachment(c.Context(), GetUserID(c), c.Params("id"), fh.Filename, data, fh.Header.Get("Content-Type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAttachment godoc
// @Summary      Borrar un adjunto de un anuncio
// @Tags         announcements
// @Param        id            path  string  true  "ID del anuncio"
// @Param        attachmentId  path  string  true  "ID del adjunto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/announcements/{id}/attachments/{attachmentId} [delete]
func (h *AnnouncementHandler) DeleteAttachment(c *fiber.Ctx) error {
	if err := h.uc.DeleteAttachment(c.Context(), GetUserID(c), c.Params("id"), c.Params("attachmentId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
