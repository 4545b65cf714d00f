package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/inventory/stock/add.
type AddStockRequest struct {
	FilmID   string          `json:"film_id"`
	Quantity decimal.Decimal `json:"quantity"` // > 0
	Notes    string          `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/stock/adjust.
type AdjustStockRequest struct {
	FilmID   string          `json:"film_id"`
	NewStock decimal.Decimal `json:"new_stock"` // >= 0, valor absoluto
	Notes    string          `json:"notes,omitempty"`
}

// SetMinimumStockRequest body para PUT /api/inventory/films/:id/minimum-stock.
type SetMinimumStockRequest struct {
	MinimumStock decimal.Decimal `json:"minimum_stock"` // >= 0
}

// StockDTO estado de stock de una película tras una mutación.
type StockDTO struct {
	FilmID       string          `json:"film_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// LowStockFilmDTO fila del reporte de stock bajo.
// Status: low | approaching | ok | unknown (sin umbral configurado).
type LowStockFilmDTO struct {
	FilmID       string          `json:"film_id"`
	FilmName     string          `json:"film_name"`
	FilmType     string          `json:"film_type"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Status       string          `json:"status"`
}

// InventoryTransactionDTO fila del ledger para la API.
type InventoryTransactionDTO struct {
	ID            string          `json:"id"`
	FilmID        string          `json:"film_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	JobEntryID    *string         `json:"job_entry_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateFilmRequest body para POST /api/films.
type CreateFilmRequest struct {
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	CostPerSqFt     decimal.Decimal  `json:"cost_per_sqft"`
	WeightPerSqFt   *decimal.Decimal `json:"weight_per_sqft,omitempty"`
	RollWidthInches *decimal.Decimal `json:"roll_width_inches,omitempty"`
}

// FilmResponse película con su estado de inventario.
type FilmResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	CostPerSqFt     decimal.Decimal  `json:"cost_per_sqft"`
	IsActive        bool             `json:"is_active"`
	WeightPerSqFt   *decimal.Decimal `json:"weight_per_sqft,omitempty"`
	RollWidthInches *decimal.Decimal `json:"roll_width_inches,omitempty"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	CreatedAt       time.Time        `json:"created_at"`
}
