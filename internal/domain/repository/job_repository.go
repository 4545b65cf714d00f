package repository

import "github.com/tu-usuario/tintpro-api/internal/domain/entity"

// JobRepository define el puerto de persistencia del agregado JobEntry.
// Create y Update persisten el padre y TODOS sus hijos (dimensiones,
// instaladores, redos, asignaciones de tiempo); Update reemplaza los hijos
// por completo (sin parches parciales). Delete elimina en cascada.
// Las escrituras se usan dentro de transacciones (ver TxRunner).
type JobRepository interface {
	// Create persiste el trabajo y asigna JobNumber desde la secuencia
	// dedicada, dentro de la misma transacción que el INSERT.
	Create(job *entity.JobEntry) error
	Update(job *entity.JobEntry) error
	Delete(id string) error
	GetByID(id string) (*entity.JobEntry, error)
	List(f Filter, limit, offset int) ([]*entity.JobEntry, error)
}
