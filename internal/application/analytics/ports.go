package analytics

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
)

// CommissionPDFGenerator genera el extracto de comisiones de un mes.
// Implementado por la capa de infraestructura (maroto).
type CommissionPDFGenerator interface {
	GenerateCommissionStatement(ctx context.Context, c *dto.CommissionResponse) ([]byte, error)
}
