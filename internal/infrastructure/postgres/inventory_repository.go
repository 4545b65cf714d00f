package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones se llaman dentro de RunInventory
// junto con el insert del ledger.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// EnsureRow crea la fila de inventario en cero si no existe (idempotente).
// Ancla el invariante "stock == suma de deltas desde 0".
func (r *InventoryRepo) EnsureRow(filmID string) error {
	query := `
		INSERT INTO film_inventory (film_id, current_stock, minimum_stock, updated_at)
		VALUES ($1, 0, 0, now())
		ON CONFLICT (film_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, filmID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("ensure inventory row: %w", err)
	}
	return nil
}

// GetByFilmID obtiene la fila de inventario de una película.
func (r *InventoryRepo) GetByFilmID(filmID string) (*entity.FilmInventory, error) {
	query := `
		SELECT film_id, current_stock, minimum_stock, updated_at
		FROM film_inventory WHERE film_id = $1`
	var inv entity.FilmInventory
	err := r.q.QueryRow(context.Background(), query, filmID).Scan(
		&inv.FilmID, &inv.CurrentStock, &inv.MinimumStock, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get film inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para el
// camino de ajuste absoluto: nadie más puede mover el stock hasta el commit.
func (r *InventoryRepo) GetForUpdate(filmID string) (*entity.FilmInventory, error) {
	query := `
		SELECT film_id, current_stock, minimum_stock, updated_at
		FROM film_inventory WHERE film_id = $1
		FOR UPDATE`
	var inv entity.FilmInventory
	err := r.q.QueryRow(context.Background(), query, filmID).Scan(
		&inv.FilmID, &inv.CurrentStock, &inv.MinimumStock, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get film inventory for update: %w", err)
	}
	return &inv, nil
}

// AddDelta ejecuta current_stock = current_stock + delta como un único
// statement atómico y devuelve la fila resultante. La aritmética la hace la
// base de datos: no hay ventana de lost-update entre leer y escribir.
func (r *InventoryRepo) AddDelta(filmID string, delta decimal.Decimal) (*entity.FilmInventory, error) {
	query := `
		UPDATE film_inventory
		SET current_stock = current_stock + $2, updated_at = now()
		WHERE film_id = $1
		RETURNING film_id, current_stock, minimum_stock, updated_at`
	var inv entity.FilmInventory
	err := r.q.QueryRow(context.Background(), query, filmID, delta).Scan(
		&inv.FilmID, &inv.CurrentStock, &inv.MinimumStock, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add stock delta: %w", err)
	}
	return &inv, nil
}

// SetStock fija el stock a un valor absoluto (usar tras GetForUpdate).
func (r *InventoryRepo) SetStock(filmID string, stock decimal.Decimal) error {
	query := `
		UPDATE film_inventory SET current_stock = $2, updated_at = now()
		WHERE film_id = $1`
	tag, err := r.q.Exec(context.Background(), query, filmID, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetMinimum actualiza solo el umbral mínimo. No toca el stock y no pasa por
// el ledger: el mínimo es configuración, no un cambio de nivel de stock.
func (r *InventoryRepo) SetMinimum(filmID string, minimum decimal.Decimal) error {
	query := `
		UPDATE film_inventory SET minimum_stock = $2, updated_at = now()
		WHERE film_id = $1`
	tag, err := r.q.Exec(context.Background(), query, filmID, minimum)
	if err != nil {
		return fmt.Errorf("set minimum stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithFilms devuelve todas las filas de inventario con su película activa.
func (r *InventoryRepo) ListWithFilms() ([]repository.LowStockFilm, error) {
	query := `
		SELECT f.id, f.name, f.type, i.current_stock, i.minimum_stock
		FROM film_inventory i
		JOIN films f ON f.id = i.film_id
		WHERE f.is_active
		ORDER BY f.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory with films: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockFilm
	for rows.Next() {
		var row repository.LowStockFilm
		if err := rows.Scan(&row.FilmID, &row.FilmName, &row.FilmType, &row.CurrentStock, &row.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo adaptador del ledger append-only. Solo inserta y
// lista: las filas nunca se actualizan ni borran.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste una fila del ledger.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, film_id, type, quantity, previous_stock, new_stock,
			job_entry_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.FilmID, tx.Type, tx.Quantity, tx.PreviousStock, tx.NewStock,
		tx.JobEntryID, tx.Notes, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// List devuelve transacciones, más recientes primero. filmID vacío = todas.
func (r *InventoryTransactionRepo) List(filmID string, limit int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, film_id, type, quantity, previous_stock, new_stock,
			job_entry_id, notes, created_by, created_at
		FROM inventory_transactions
		WHERE ($1 = '' OR film_id = $1)
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, filmID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.FilmID, &t.Type, &t.Quantity, &t.PreviousStock, &t.NewStock,
			&t.JobEntryID, &t.Notes, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
