package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

// MaxImportRows límite de filas por importación.
const MaxImportRows = 5000

// ImportUseCase importación masiva de ventas y reportes desde hoja de cálculo.
// Todas las filas se validan antes de escribir; si alguna falla no se guarda ninguna.
type ImportUseCase struct {
	tx            repository.TxRunner
	reader        SheetReader
	defaultMethod string
	log           *logger.Logger
	now           func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx repository.TxRunner, reader SheetReader, defaultMethod string, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{tx: tx, reader: reader, defaultMethod: defaultMethod, log: log, now: time.Now}
}

// Preview lee el fichero y propone el mapeo cabecera → campo. Los registros
// devueltos ya vienen con claves internas, listos para Import.
func (uc *ImportUseCase) Preview(ctx context.Context, kind, filename string, r io.Reader) (*dto.ImportPreviewResponse, error) {
	fields, ok := FieldsFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de importación %q", domain.ErrInvalidInput, kind)
	}
	headers, rows, err := uc.reader.ReadSheet(filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) > MaxImportRows {
		return nil, fmt.Errorf("%w: máximo %d filas (hay %d)", domain.ErrInvalidInput, MaxImportRows, len(rows))
	}
	mapping, unmapped := AutoMap(headers, fields)

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(mapping))
		empty := true
		for i, h := range headers {
			key, ok := mapping[h]
			if !ok || i >= len(row) {
				continue
			}
			rec[key] = row[i]
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	if unmapped == nil {
		unmapped = []string{}
	}
	return &dto.ImportPreviewResponse{
		Type:     kind,
		Headers:  headers,
		Mapping:  mapping,
		Unmapped: unmapped,
		Records:  records,
		Total:    len(records),
	}, nil
}

// Import valida y guarda los registros en una única transacción.
// Con errores de fila devuelve el resumen con los errores y domain.ErrInvalidInput.
func (uc *ImportUseCase) Import(ctx context.Context, kind string, records []map[string]any) (*dto.ImportResult, error) {
	if _, ok := FieldsFor(kind); !ok {
		return nil, fmt.Errorf("%w: tipo de importación %q", domain.ErrInvalidInput, kind)
	}
	if len(records) == 0 || len(records) > MaxImportRows {
		return nil, fmt.Errorf("%w: entre 1 y %d registros", domain.ErrInvalidInput, MaxImportRows)
	}
	now := uc.now()
	result := &dto.ImportResult{Type: kind}

	var sales []*entity.Sale
	var reports []*entity.ActivityReport
	for i, rec := range records {
		switch kind {
		case dto.ImportTypeSales:
			s, _ := SaleFromRecord(rec, entity.SaleSourceImport, Defaults{Now: now, PaymentMethod: uc.defaultMethod}, false)
			if err := s.Validate(); err != nil {
				result.Errors = append(result.Errors, dto.ImportRowError{Row: i + 1, Message: err.Error()})
				continue
			}
			sales = append(sales, s)
		case dto.ImportTypeReports:
			rep, err := ReportFromRecord(rec, now)
			if err != nil {
				result.Errors = append(result.Errors, dto.ImportRowError{Row: i + 1, Message: err.Error()})
				continue
			}
			reports = append(reports, rep)
		}
	}
	if len(result.Errors) > 0 {
		return result, fmt.Errorf("%w: %d filas con errores", domain.ErrInvalidInput, len(result.Errors))
	}

	err := uc.tx.Run(ctx, func(salesRepo repository.SaleRepository, reportsRepo repository.ActivityReportRepository) error {
		for i, s := range sales {
			if err := salesRepo.Create(ctx, s); err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
		}
		for i, rep := range reports {
			if err := reportsRepo.Create(ctx, rep); err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar %s: %w", kind, err)
	}
	result.Imported = len(sales) + len(reports)
	uc.log.Info().Str("type", kind).Int("imported", result.Imported).Msg("importación completada")
	return result, nil
}
