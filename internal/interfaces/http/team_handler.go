package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
)

// TeamHandler gestión del equipo (solo director).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create godoc
// @Summary      Crear miembro del equipo
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamMemberRequest  true  "Datos del miembro"
// @Success      201   {object}  dto.TeamMemberResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamMemberRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipo
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "director | manager | closer | setter"
// @Param        active  query  bool    false  "Solo activos / inactivos"
// @Success      200     {array}  dto.TeamMemberResponse
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	var active *bool
	if v := c.Query("active"); v != "" {
		b := c.QueryBool("active")
		active = &b
	}
	out, err := h.uc.List(c.UserContext(), c.Query("role"), active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener miembro
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del miembro"
// @Success      200  {object}  dto.TeamMemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [get]
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "miembro no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar miembro
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del miembro"
// @Param        body  body  dto.UpdateTeamMemberRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TeamMemberResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team/{id} [patch]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTeamMemberRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar miembro
// @Tags         team
// @Security     Bearer
// @Param        id   path  string  true  "ID del miembro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
