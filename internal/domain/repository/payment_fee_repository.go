package repository

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// PaymentFeeRepository puerto para la tabla de comisiones de pasarela.
type PaymentFeeRepository interface {
	// Create devuelve domain.ErrDuplicate si el método ya existe.
	Create(ctx context.Context, f *entity.PaymentFee) error
	GetByID(ctx context.Context, id string) (*entity.PaymentFee, error)
	GetByMethod(ctx context.Context, method string) (*entity.PaymentFee, error)
	// List devuelve los métodos ordenados alfabéticamente.
	List(ctx context.Context) ([]*entity.PaymentFee, error)
	Update(ctx context.Context, f *entity.PaymentFee) error
	Delete(ctx context.Context, id string) error
}
