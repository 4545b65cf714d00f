package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DimensionRequest una pieza de película del trabajo.
type DimensionRequest struct {
	LengthInches decimal.Decimal `json:"length_inches"`
	WidthInches  decimal.Decimal `json:"width_inches"`
	FilmID       *string         `json:"film_id,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// RedoRequest un retrabajo reportado junto con el trabajo.
type RedoRequest struct {
	Part         string           `json:"part"`
	InstallerID  *string          `json:"installer_id,omitempty"`
	LengthInches *decimal.Decimal `json:"length_inches,omitempty"`
	WidthInches  *decimal.Decimal `json:"width_inches,omitempty"`
	MaterialCost *decimal.Decimal `json:"material_cost,omitempty"`
	TimeMinutes  int              `json:"time_minutes,omitempty"`
}

// CreateJobRequest body para POST /api/jobs (payload ya validado por la capa
// de request; aquí solo se validan reglas de negocio). WindowAssignments se
// guarda crudo: si no parsea, el reparto cae al conteo agregado.
type CreateJobRequest struct {
	Date                   string             `json:"date"` // YYYY-MM-DD
	VehicleYear            int                `json:"vehicle_year"`
	VehicleMake            string             `json:"vehicle_make"`
	VehicleModel           string             `json:"vehicle_model"`
	TotalWindows           int                `json:"total_windows"`
	DurationMinutes        int                `json:"duration_minutes"`
	Notes                  string             `json:"notes,omitempty"`
	InstallerIDs           []string           `json:"installer_ids"`
	InstallerTimeVariances map[string]int     `json:"installer_time_variances,omitempty"`
	Dimensions             []DimensionRequest `json:"dimensions,omitempty"`
	WindowAssignments      json.RawMessage    `json:"window_assignments,omitempty"`
	RedoEntries            []RedoRequest      `json:"redo_entries,omitempty"`
}

// DimensionDTO dimensión persistida con su área calculada.
type DimensionDTO struct {
	ID           string          `json:"id"`
	LengthInches decimal.Decimal `json:"length_inches"`
	WidthInches  decimal.Decimal `json:"width_inches"`
	SqFt         decimal.Decimal `json:"sqft"`
	FilmID       *string         `json:"film_id,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// JobInstallerDTO instalador asignado con su varianza de tiempo.
type JobInstallerDTO struct {
	InstallerID  string `json:"installer_id"`
	TimeVariance int    `json:"time_variance"`
}

// RedoDTO retrabajo persistido.
type RedoDTO struct {
	ID           string           `json:"id"`
	Part         string           `json:"part"`
	InstallerID  *string          `json:"installer_id,omitempty"`
	LengthInches *decimal.Decimal `json:"length_inches,omitempty"`
	WidthInches  *decimal.Decimal `json:"width_inches,omitempty"`
	MaterialCost decimal.Decimal  `json:"material_cost"`
	TimeMinutes  int              `json:"time_minutes"`
}

// TimeEntryDTO asignación de tiempo derivada por el motor de reparto.
type TimeEntryDTO struct {
	InstallerID      string `json:"installer_id"`
	WindowsCompleted int    `json:"windows_completed"`
	TimeMinutes      int    `json:"time_minutes"`
}

// JobResponse trabajo persistido con número generado y todos sus derivados.
// AllocationFallback indica que el payload de asignaciones no parseó y el
// conteo agregado quedó como única fuente (warning de calidad de datos).
type JobResponse struct {
	ID                 string            `json:"id"`
	JobNumber          string            `json:"job_number"`
	Date               time.Time         `json:"date"`
	VehicleYear        int               `json:"vehicle_year"`
	VehicleMake        string            `json:"vehicle_make"`
	VehicleModel       string            `json:"vehicle_model"`
	TotalWindows       int               `json:"total_windows"`
	DurationMinutes    int               `json:"duration_minutes"`
	TotalSqFt          decimal.Decimal   `json:"total_sqft"`
	TotalCost          decimal.Decimal   `json:"total_cost"`
	Notes              string            `json:"notes,omitempty"`
	Dimensions         []DimensionDTO    `json:"dimensions"`
	Installers         []JobInstallerDTO `json:"installers"`
	RedoEntries        []RedoDTO         `json:"redo_entries"`
	TimeEntries        []TimeEntryDTO    `json:"time_entries"`
	AllocationFallback bool              `json:"allocation_fallback,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
