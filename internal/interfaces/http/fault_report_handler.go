package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Condominio-api/internal/application/dto"
	appreport "github.com/jhoicas/Condominio-api/internal/application/report"
)

// maxImageBytes tamaño máximo aceptado por imagen adjunta.
const maxImageBytes = 10 << 20

// FaultReportHandler maneja las peticiones HTTP para partes de avería.
type FaultReportHandler struct {
	uc *appreport.UseCase
}

// NewFaultReportHandler construye el handler inyectando el caso de uso.
func NewFaultReportHandler(uc *appreport.UseCase) *FaultReportHandler {
	return &FaultReportHandler{uc: uc}
}

// Create godoc
// @Summary      Crear parte de avería (solo residentes)
// @Tags         fault-reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFaultReportRequest  true  "Datos de la parte"
// @Success      201   {object}  dto.FaultReportResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/fault-reports [post]
func (h *FaultReportHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFaultReportRequest
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
// @Summary      Listar partes (roles de flujo: todo el tenant; residente: las suyas)
// @Tags         fault-reports
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.FaultReportListResponse
// @Router       /api/fault-reports [get]
func (h *FaultReportHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener parte por ID
// @Tags         fault-reports
// @Produce      json
// @Param        id   path  string  true  "ID de la parte"
// @Success      200  {object}  dto.FaultReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fault-reports/{id} [get]
func (h *FaultReportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar parte (solo el creador, solo mientras está abierta)
// @Tags         fault-reports
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la parte"
// @Param        body  body  dto.UpdateFaultReportRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FaultReportResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fault-reports/{id} [put]
func (h *FaultReportHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFaultReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddImage godoc
// @Summary      Adjuntar imagen a una parte (multipart)
// @Tags         fault-reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID de la parte"
// @Param        image  formData  file    true  "Imagen"
// @Success      200    {object}  dto.FaultReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/fault-reports/{id}/images [post]
func (h *FaultReportHandler) AddImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'image' requerido"})
	}
	if fh.Size > maxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "la imagen supera el tamaño máximo"})
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
	out, err := h.uc.AddImage(c.Context(), GetUserID(c), c.Params("id"), fh.Filename, data, fh.Header.Get("Content-Type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AllowedStatuses godoc
// @Summary      Estados alcanzables desde el estado actual para el llamador
// @Tags         fault-reports
// @Produce      json
// @Param        id   path  string  true  "ID de la parte"
// @Success      200  {object}  dto.AllowedStatusesResponse
// @Router       /api/fault-reports/{id}/allowed-statuses [get]
func (h *FaultReportHandler) AllowedStatuses(c *fiber.Ctx) error {
	out, err := h.uc.AllowedStatuses(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Mover la parte a otro estado del flujo
// @Tags         fault-reports
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la parte"
// @Param        body  body  dto.TransitionFaultReportRequest  true  "Estado destino"
// @Success      200   {object}  dto.FaultReportResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fault-reports/{id}/status [post]
func (h *FaultReportHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionFaultReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.Transition(GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
