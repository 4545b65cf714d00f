package dto

import "github.com/shopspring/decimal"

// PerformanceMetricsDTO totales del conjunto filtrado de trabajos.
type PerformanceMetricsDTO struct {
	TotalVehicles    int             `json:"total_vehicles"`
	TotalWindows     int             `json:"total_windows"`
	TotalRedos       int             `json:"total_redos"`
	AvgTimeVariance  decimal.Decimal `json:"avg_time_variance"` // minutos, 1 decimal
	ActiveInstallers int             `json:"active_installers"`
	JobsWithoutRedos int             `json:"jobs_without_redos"`
}

// TopPerformerDTO fila del ranking de instaladores.
// SuccessRate = clamp((ventanas - redos) / ventanas * 100, 0, 100);
// por convención documentada es 100 cuando ventanas == 0.
type TopPerformerDTO struct {
	InstallerID   string          `json:"installer_id"`
	InstallerName string          `json:"installer_name"`
	VehicleCount  int             `json:"vehicle_count"`
	TotalWindows  int             `json:"total_windows"`
	RedoCount     int             `json:"redo_count"`
	SuccessRate   decimal.Decimal `json:"success_rate"`
}

// RedoBreakdownDTO redos por parte del vehículo, orden count DESC, parte ASC.
type RedoBreakdownDTO struct {
	Part  string `json:"part"`
	Count int    `json:"count"`
}

// InstallerWindowPerformanceDTO desempeño por instalador del análisis de ventanas.
// SuccessRate aquí solo tiene piso en 0 (sin tope superior, semántica de la
// fuente); una tasa con RedoCount > WindowsCompleted delata la anomalía.
type InstallerWindowPerformanceDTO struct {
	InstallerID      string          `json:"installer_id"`
	InstallerName    string          `json:"installer_name"`
	WindowsCompleted int             `json:"windows_completed"`
	RedoCount        int             `json:"redo_count"`
	SuccessRate      decimal.Decimal `json:"success_rate"`
}

// WindowPerformanceDTO análisis global de ventanas con reconciliación de la
// representación dual: FallbackJobs cuenta los trabajos sin asignación
// explícita que aportaron su total agregado.
type WindowPerformanceDTO struct {
	TotalWindows int                             `json:"total_windows"`
	TotalRedos   int                             `json:"total_redos"`
	SuccessRate  decimal.Decimal                 `json:"success_rate"`
	FallbackJobs int                             `json:"fallback_jobs"`
	Installers   []InstallerWindowPerformanceDTO `json:"installers"`
}

// InstallerTimePerformanceDTO eficiencia de tiempo por instalador,
// ascendente por AvgTimePerWindow (menos minutos por ventana es mejor).
type InstallerTimePerformanceDTO struct {
	InstallerID      string          `json:"installer_id"`
	InstallerName    string          `json:"installer_name"`
	TotalMinutes     int             `json:"total_minutes"`
	TotalWindows     int             `json:"total_windows"`
	AvgTimePerWindow decimal.Decimal `json:"avg_time_per_window"` // 1 decimal
	JobCount         int             `json:"job_count"`
}

// FilmConsumptionDTO consumo de material por película.
type FilmConsumptionDTO struct {
	FilmID    string          `json:"film_id"`
	FilmName  string          `json:"film_name"`
	FilmType  string          `json:"film_type"`
	TotalSqFt decimal.Decimal `json:"total_sqft"`
	TotalCost decimal.Decimal `json:"total_cost"`
	JobCount  int             `json:"job_count"`
}
