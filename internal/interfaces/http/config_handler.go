package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
)

// ConfigHandler tabla de comisiones por método de pago y configuración de n8n.
type ConfigHandler struct {
	fees *usecase.PaymentFeeUseCase
	n8n  *usecase.N8nConfigUseCase
}

func NewConfigHandler(fees *usecase.PaymentFeeUseCase, n8n *usecase.N8nConfigUseCase) *ConfigHandler {
	return &ConfigHandler{fees: fees, n8n: n8n}
}

// ListFees godoc
// @Summary      Listar comisiones de pago
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentFeeResponse
// @Router       /api/payment-fees [get]
func (h *ConfigHandler) ListFees(c *fiber.Ctx) error {
	out, err := h.fees.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateFee godoc
// @Summary      Crear método de pago
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentFeeRequest  true  "Método y comisión (0..1)"
// @Success      201   {object}  dto.PaymentFeeResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payment-fees [post]
func (h *ConfigHandler) CreateFee(c *fiber.Ctx) error {
	var in dto.PaymentFeeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.fees.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateFee godoc
// @Summary      Editar método de pago
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.PaymentFeeRequest  true  "Método y comisión"
// @Success      200   {object}  dto.PaymentFeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-fees/{id} [put]
func (h *ConfigHandler) UpdateFee(c *fiber.Ctx) error {
	var in dto.PaymentFeeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.fees.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFee godoc
// @Summary      Eliminar método de pago
// @Tags         config
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/payment-fees/{id} [delete]
func (h *ConfigHandler) DeleteFee(c *fiber.Ctx) error {
	if err := h.fees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetN8n godoc
// @Summary      Configuración de la integración n8n
// @Description  Se crea con una API key nueva la primera vez que se consulta.
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.N8nConfigResponse
// @Router       /api/n8n-config [get]
func (h *ConfigHandler) GetN8n(c *fiber.Ctx) error {
	out, err := h.n8n.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateN8n godoc
// @Summary      Editar integración n8n
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateN8nConfigRequest  true  "URL y estado"
// @Success      200   {object}  dto.N8nConfigResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Router       /api/n8n-config [put]
func (h *ConfigHandler) UpdateN8n(c *fiber.Ctx) error {
	var in dto.UpdateN8nConfigRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.n8n.Update(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
