package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Film es un tipo de película (material consumible del taller).
type Film struct {
	ID             string
	Name           string
	Type           string // ceramic, carbon, dyed, hybrid
	CostPerSqFt    decimal.Decimal
	IsActive       bool
	WeightPerSqFt  *decimal.Decimal // opcional, especificación del rollo
	RollWidthInches *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FilmInventory es la fila de stock actual de una película.
// Solo se muta a través de las operaciones del ledger de inventario.
type FilmInventory struct {
	FilmID       string
	CurrentStock decimal.Decimal // pies cuadrados, nunca negativo
	MinimumStock decimal.Decimal
	UpdatedAt    time.Time
}

// Tipos de transacción del ledger de inventario.
const (
	TransactionTypeAddition   = "addition"   // entrada de stock (cantidad > 0)
	TransactionTypeAdjustment = "adjustment" // ajuste a un valor absoluto (delta firmado)
)

// Estados de stock derivados para el reporte de stock bajo.
const (
	StockStatusLow         = "low"         // minimum > 0 y current <= minimum
	StockStatusApproaching = "approaching" // current <= minimum * 1.5
	StockStatusOK          = "ok"
	StockStatusUnknown     = "unknown" // minimum == 0, sin umbral configurado
)

// InventoryTransaction es una fila del ledger: inmutable una vez escrita.
// PreviousStock y NewStock encuadran el cambio; la suma de todos los Quantity
// desde cero debe igualar siempre el stock actual de la película.
type InventoryTransaction struct {
	ID            string
	FilmID        string
	Type          string
	Quantity      decimal.Decimal // delta firmado
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	JobEntryID    *string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}
