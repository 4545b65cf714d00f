package jobs

import (
	"context"

	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de trabajos atado a esa tx. Garantiza que el padre y todos sus
// hijos (dimensiones, instaladores, redos, asignaciones de tiempo) se
// confirmen o reviertan como una unidad: un commit parcial corrompe los
// agregados sin acción compensatoria posible.
type TxRunner interface {
	RunJobs(ctx context.Context, fn func(jobRepo repository.JobRepository) error) error
}
