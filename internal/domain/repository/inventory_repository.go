package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
)

// LowStockFilm es una fila del reporte de stock bajo (película + inventario).
type LowStockFilm struct {
	FilmID       string
	FilmName     string
	FilmType     string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
}

// InventoryRepository define el puerto sobre film_inventory.
// Las mutaciones de stock se usan SIEMPRE dentro de una transacción junto
// con el insert del ledger (ver inventory.TxRunner): una mutación parcial
// corrompe el audit trail.
type InventoryRepository interface {
	// EnsureRow crea la fila de inventario en cero si no existe (idempotente).
	EnsureRow(filmID string) error
	GetByFilmID(filmID string) (*entity.FilmInventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el camino de ajuste.
	GetForUpdate(filmID string) (*entity.FilmInventory, error)
	// AddDelta ejecuta current_stock = current_stock + delta como un único
	// statement atómico y devuelve la fila resultante. Elimina la ventana de
	// lost-update del camino read-modify-write.
	AddDelta(filmID string, delta decimal.Decimal) (*entity.FilmInventory, error)
	// SetStock fija el stock a un valor absoluto (usado tras GetForUpdate).
	SetStock(filmID string, stock decimal.Decimal) error
	SetMinimum(filmID string, minimum decimal.Decimal) error
	// ListWithFilms devuelve todas las filas de inventario con su película,
	// para derivar el estado de stock bajo.
	ListWithFilms() ([]LowStockFilm, error)
}

// InventoryTransactionRepository define el puerto del ledger (append-only).
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	// List devuelve transacciones, más recientes primero. filmID vacío = todas.
	List(filmID string, limit int) ([]*entity.InventoryTransaction, error)
}
