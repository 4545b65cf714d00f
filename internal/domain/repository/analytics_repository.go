package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// JobTotalsResult resultado crudo de los totales del conjunto filtrado de trabajos.
type JobTotalsResult struct {
	TotalVehicles    int
	TotalWindows     int
	TotalRedos       int
	AvgTimeVariance  decimal.Decimal // promedio de job_installers.time_variance
	ActiveInstallers int             // instaladores distintos en el conjunto filtrado
	JobsWithoutRedos int
}

// InstallerPerformanceResult fila cruda por instalador para el ranking de desempeño.
type InstallerPerformanceResult struct {
	InstallerID   string
	InstallerName string
	VehicleCount  int // trabajos distintos
	TotalWindows  int // suma de total_windows de sus trabajos
	RedoCount     int
}

// RedoBreakdownResult redos agrupados por parte del vehículo.
type RedoBreakdownResult struct {
	Part  string
	Count int
}

// JobWindowResult fila por trabajo para reconciliar la representación dual de
// ventanas: AssignedWindows viene de installer_time_entries (0 si no hay).
type JobWindowResult struct {
	JobEntryID      string
	TotalWindows    int
	AssignedWindows int
	RedoCount       int
}

// InstallerWindowResult ventanas completadas y redos por instalador
// (solo trabajos con asignación explícita; el fallback agregado no atribuye).
type InstallerWindowResult struct {
	InstallerID      string
	InstallerName    string
	WindowsCompleted int
	RedoCount        int
}

// InstallerTimeResult fila cruda de eficiencia por instalador.
type InstallerTimeResult struct {
	InstallerID   string
	InstallerName string
	TotalMinutes  int
	TotalWindows  int
	JobCount      int // trabajos distintos con asignación de tiempo
}

// FilmConsumptionResult consumo de material por película en el conjunto filtrado.
type FilmConsumptionResult struct {
	FilmID    string
	FilmName  string
	FilmType  string
	TotalSqFt decimal.Decimal
	TotalCost decimal.Decimal
	JobCount  int
}

// AnalyticsRepository define las consultas de lectura para el agregador de
// métricas. Las implementaciones son read-only y sin caché: cada llamada
// calcula sobre el estado actual. Datos ausentes producen ceros, no errores.
type AnalyticsRepository interface {
	GetJobTotals(ctx context.Context, f Filter) (JobTotalsResult, error)

	// GetInstallerPerformance devuelve una fila por instalador con trabajos,
	// ventanas y redos del conjunto filtrado (inner joins: las filas con
	// padres faltantes quedan fuera).
	GetInstallerPerformance(ctx context.Context, f Filter) ([]InstallerPerformanceResult, error)

	// GetRedoBreakdown agrupa redos por parte: count DESC, empate por parte ASC.
	GetRedoBreakdown(ctx context.Context, f Filter) ([]RedoBreakdownResult, error)

	GetJobWindowRows(ctx context.Context, f Filter) ([]JobWindowResult, error)
	GetInstallerWindowRows(ctx context.Context, f Filter) ([]InstallerWindowResult, error)
	GetInstallerTimeRows(ctx context.Context, f Filter) ([]InstallerTimeResult, error)
	GetFilmConsumption(ctx context.Context, f Filter) ([]FilmConsumptionResult, error)
}
