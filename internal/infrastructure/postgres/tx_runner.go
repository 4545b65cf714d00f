package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/tintpro-api/internal/application/inventory"
	"github.com/tu-usuario/tintpro-api/internal/application/jobs"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// Ensure TxRunner implements jobs.TxRunner and inventory.TxRunner.
var _ jobs.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunJobs inicia una transacción, ejecuta fn con el repo de trabajos atado a
// la tx y hace Commit o Rollback. El padre y todos sus hijos se confirman
// como una unidad.
func (r *TxRunner) RunJobs(ctx context.Context, fn func(jobRepo repository.JobRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	jobRepo := NewJobRepository(tx)

	if err := fn(jobRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventory inicia una transacción con los repos de inventario y ledger.
// La mutación de film_inventory y el insert en inventory_transactions salen
// juntos o no salen.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	ledgerRepo repository.InventoryTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	ledgerRepo := NewInventoryTransactionRepository(tx)

	if err := fn(invRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
