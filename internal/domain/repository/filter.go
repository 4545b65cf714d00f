package repository

import "time"

// Filter acota las consultas de agregación por instalador y/o rango de fechas.
// Todos los campos son opcionales; el cero significa "sin filtro".
type Filter struct {
	InstallerID string
	DateFrom    *time.Time
	DateTo      *time.Time
}
