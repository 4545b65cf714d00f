package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// Umbral "approaching": stock <= minimum * 1.5.
var approachingFactor = decimal.NewFromFloat(1.5)

// UseCase operaciones del ledger de inventario: cada mutación de stock
// produce EXACTAMENTE una transacción con previous/new stock exactos, dentro
// de la misma transacción SQL que la mutación.
type UseCase struct {
	txRunner TxRunner
	filmRepo repository.FilmRepository
	invRepo  repository.InventoryRepository
	txRepo   repository.InventoryTransactionRepository
}

// NewUseCase construye el caso de uso. invRepo y txRepo son los adaptadores
// atados al pool (camino de lectura); las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	filmRepo repository.FilmRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.InventoryTransactionRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, filmRepo: filmRepo, invRepo: invRepo, txRepo: txRepo}
}

// AddStock suma quantity al stock de la película y escribe la fila `addition`
// del ledger. quantity <= 0 se rechaza antes de cualquier escritura.
// El delta lo aplica la base de datos como un único statement atómico
// (current_stock = current_stock + delta): no hay ventana de lost-update.
func (uc *UseCase) AddStock(ctx context.Context, filmID string, quantity decimal.Decimal, actorID, notes string) (*dto.StockDTO, error) {
	if filmID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	film, err := uc.filmRepo.GetByID(filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.FilmInventory
	err = uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		if err := invRepo.EnsureRow(filmID); err != nil {
			return err
		}
		inv, err := invRepo.AddDelta(filmID, quantity)
		if err != nil {
			return err
		}
		tx := &entity.InventoryTransaction{
			ID:            uuid.New().String(),
			FilmID:        filmID,
			Type:          entity.TransactionTypeAddition,
			Quantity:      quantity,
			PreviousStock: inv.CurrentStock.Sub(quantity),
			NewStock:      inv.CurrentStock,
			Notes:         notes,
			CreatedBy:     actorID,
			CreatedAt:     time.Now(),
		}
		if err := ledgerRepo.Create(tx); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockDTO(result), nil
}

// AdjustStock fija el stock de la película a un valor absoluto y escribe la
// fila `adjustment` con el delta firmado. targetStock < 0 se rechaza antes de
// cualquier escritura. La fila se bloquea (SELECT FOR UPDATE) para que el
// delta se calcule contra un valor que nadie más puede mover hasta el commit.
func (uc *UseCase) AdjustStock(ctx context.Context, filmID string, targetStock decimal.Decimal, actorID, notes string) (*dto.StockDTO, error) {
	if filmID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if targetStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	film, err := uc.filmRepo.GetByID(filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.FilmInventory
	err = uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		if err := invRepo.EnsureRow(filmID); err != nil {
			return err
		}
		inv, err := invRepo.GetForUpdate(filmID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		delta := targetStock.Sub(inv.CurrentStock)
		if err := invRepo.SetStock(filmID, targetStock); err != nil {
			return err
		}
		tx := &entity.InventoryTransaction{
			ID:            uuid.New().String(),
			FilmID:        filmID,
			Type:          entity.TransactionTypeAdjustment,
			Quantity:      delta,
			PreviousStock: inv.CurrentStock,
			NewStock:      targetStock,
			Notes:         notes,
			CreatedBy:     actorID,
			CreatedAt:     time.Now(),
		}
		if err := ledgerRepo.Create(tx); err != nil {
			return err
		}
		inv.CurrentStock = targetStock
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockDTO(result), nil
}

// SetMinimumStock actualiza solo el umbral mínimo. No emite fila del ledger:
// el mínimo es configuración del reporte, no un cambio de nivel de stock.
func (uc *UseCase) SetMinimumStock(ctx context.Context, filmID string, minimum decimal.Decimal) (*dto.StockDTO, error) {
	if filmID == "" {
		return nil, domain.ErrInvalidInput
	}
	if minimum.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	film, err := uc.filmRepo.GetByID(filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.invRepo.EnsureRow(filmID); err != nil {
		return nil, err
	}
	if err := uc.invRepo.SetMinimum(filmID, minimum); err != nil {
		return nil, err
	}
	inv, err := uc.invRepo.GetByFilmID(filmID)
	if err != nil {
		return nil, err
	}
	return toStockDTO(inv), nil
}

// GetLowStockFilms deriva el estado de stock de cada película activa:
// low (minimum > 0 y stock <= minimum), approaching (stock <= minimum*1.5),
// unknown (minimum == 0, sin umbral configurado), ok en el resto.
func (uc *UseCase) GetLowStockFilms(ctx context.Context) ([]dto.LowStockFilmDTO, error) {
	rows, err := uc.invRepo.ListWithFilms()
	if err != nil {
		return nil, err
	}
	result := make([]dto.LowStockFilmDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.LowStockFilmDTO{
			FilmID:       row.FilmID,
			FilmName:     row.FilmName,
			FilmType:     row.FilmType,
			CurrentStock: row.CurrentStock,
			MinimumStock: row.MinimumStock,
			Status:       stockStatus(row.CurrentStock, row.MinimumStock),
		})
	}
	return result, nil
}

// GetTransactions lista el ledger, más recientes primero. filmID vacío = todas.
func (uc *UseCase) GetTransactions(ctx context.Context, filmID string, limit int) ([]dto.InventoryTransactionDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	list, err := uc.txRepo.List(filmID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InventoryTransactionDTO, 0, len(list))
	for _, t := range list {
		result = append(result, dto.InventoryTransactionDTO{
			ID:            t.ID,
			FilmID:        t.FilmID,
			Type:          t.Type,
			Quantity:      t.Quantity,
			PreviousStock: t.PreviousStock,
			NewStock:      t.NewStock,
			JobEntryID:    t.JobEntryID,
			Notes:         t.Notes,
			CreatedBy:     t.CreatedBy,
			CreatedAt:     t.CreatedAt,
		})
	}
	return result, nil
}

func stockStatus(current, minimum decimal.Decimal) string {
	if minimum.IsZero() {
		return entity.StockStatusUnknown
	}
	if current.LessThanOrEqual(minimum) {
		return entity.StockStatusLow
	}
	if current.LessThanOrEqual(minimum.Mul(approachingFactor)) {
		return entity.StockStatusApproaching
	}
	return entity.StockStatusOK
}

func toStockDTO(inv *entity.FilmInventory) *dto.StockDTO {
	if inv == nil {
		return nil
	}
	return &dto.StockDTO{
		FilmID:       inv.FilmID,
		CurrentStock: inv.CurrentStock,
		MinimumStock: inv.MinimumStock,
	}
}
