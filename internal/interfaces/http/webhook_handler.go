package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
)

// HeaderAPIKey cabecera con la API key del CRM / n8n.
const HeaderAPIKey = "X-API-Key"

// WebhookHandler entrada de ventas desde el CRM.
type WebhookHandler struct {
	uc *ingest.WebhookUseCase
}

func NewWebhookHandler(uc *ingest.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// Sale godoc
// @Summary      Alta de venta desde el CRM
// @Description  Acepta claves internas o etiquetas del CRM. Una actividad ya registrada devuelve 409 con el id existente.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        body       body    object  true  "Payload del CRM"
// @Success      201  {object}  dto.WebhookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.DuplicateResponse
// @Router       /api/webhook/sale [post]
func (h *WebhookHandler) Sale(c *fiber.Ctx) error {
	if err := h.uc.Authorize(c.UserContext(), c.Get(HeaderAPIKey)); err != nil {
		return respondError(c, err)
	}
	payload := map[string]any{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "INVALID_BODY", "se espera un objeto JSON")
	}
	out, err := h.uc.Ingest(c.UserContext(), payload)
	if err != nil {
		var dup *ingest.DuplicateError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(dto.DuplicateResponse{
				Code:       "DUPLICATE",
				Message:    "la actividad ya fue registrada",
				ExistingID: dup.ExistingID,
			})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
