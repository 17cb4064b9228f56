package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
)

// ImportHandler importación masiva: vista previa de una hoja y confirmación.
type ImportHandler struct {
	uc *ingest.ImportUseCase
}

func NewImportHandler(uc *ingest.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Preview godoc
// @Summary      Vista previa de importación
// @Description  Lee un xlsx o csv, mapea cabeceras a campos y devuelve los registros sin guardar.
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        type  formData  string  true  "sales | reports"
// @Param        file  formData  file    true  "Hoja de cálculo"
// @Success      200  {object}  dto.ImportPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	kind := c.FormValue("type", dto.ImportTypeSales)
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es obligatorio")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el fichero")
	}
	defer f.Close()

	out, err := h.uc.Preview(c.UserContext(), kind, fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Confirmar importación
// @Description  Todo o nada: si alguna fila es inválida no se guarda ninguna y se devuelven los errores por fila.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string  true  "sales | reports"
// @Param        body  body  dto.ImportRequest  true  "Registros con claves internas"
// @Success      201  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ImportResult
// @Router       /api/import/{type} [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Import(c.UserContext(), c.Params("type"), in.Records)
	if err != nil {
		if out != nil && errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(out)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
