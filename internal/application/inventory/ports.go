package inventory

import (
	"context"

	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La mutación de stock y la fila del ledger
// que la encuadra salen juntas o no salen: una mutación sin su fila (o al
// revés) rompe el audit trail sin acción compensatoria posible.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error) error
}
