package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
)

// ProjectionHandler objetivos mensuales y semanales y su tablero de avance.
type ProjectionHandler struct {
	uc    *usecase.ProjectionUseCase
	board *analytics.ProjectionBoardUseCase
}

func NewProjectionHandler(uc *usecase.ProjectionUseCase, board *analytics.ProjectionBoardUseCase) *ProjectionHandler {
	return &ProjectionHandler{uc: uc, board: board}
}

// Create godoc
// @Summary      Crear objetivo
// @Tags         projections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProjectionRequest  true  "Objetivo"
// @Success      201   {object}  dto.ProjectionResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projections [post]
func (h *ProjectionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProjectionRequest
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
// @Summary      Listar objetivos
// @Tags         projections
// @Security     Bearer
// @Produce      json
// @Param        period_type  query  string  false  "monthly | weekly"
// @Param        period       query  string  false  "2026-02 o 2026-W06"
// @Param        scope        query  string  false  "company | closer | setter"
// @Param        member_id    query  string  false  "Miembro"
// @Success      200  {array}  dto.ProjectionResponse
// @Router       /api/projections [get]
func (h *ProjectionHandler) List(c *fiber.Ctx) error {
	var q dto.ProjectionListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener objetivo
// @Tags         projections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProjectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projections/{id} [get]
func (h *ProjectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "objetivo no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar objetivo
// @Tags         projections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.ProjectionRequest  true  "Objetivo"
// @Success      200   {object}  dto.ProjectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projections/{id} [put]
func (h *ProjectionHandler) Update(c *fiber.Ctx) error {
	var in dto.ProjectionRequest
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
// @Summary      Eliminar objetivo
// @Tags         projections
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/projections/{id} [delete]
func (h *ProjectionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Board godoc
// @Summary      Avance de objetivos del periodo
// @Description  Closers y setters solo ven su propia fila; el objetivo de empresa es visible para todos.
// @Tags         projections
// @Security     Bearer
// @Produce      json
// @Param        period_type  query  string  false  "monthly | weekly"  default(monthly)
// @Param        period       query  string  false  "Periodo (vacío = en curso)"
// @Success      200  {object}  dto.ProjectionBoardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/projections/board [get]
func (h *ProjectionHandler) Board(c *fiber.Ctx) error {
	var q dto.BoardQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.board.Get(c.UserContext(), q, GetViewer(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
