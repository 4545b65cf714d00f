package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobEntry representa una orden de trabajo de polarizado sobre un vehículo.
// Es el agregado raíz: sus hijos (dimensiones, instaladores, redos y
// asignaciones de tiempo) se crean y eliminan junto con él.
type JobEntry struct {
	ID              string
	JobNumber       string // generado por secuencia: "JOB-<n>"
	Date            time.Time
	VehicleYear     int
	VehicleMake     string
	VehicleModel    string
	TotalWindows    int // >= 1
	DurationMinutes int
	TotalSqFt       decimal.Decimal
	TotalCost       decimal.Decimal
	Notes           string
	// WindowAssignments guarda el payload crudo de asignaciones ventana→instalador
	// tal como llegó. Si no parsea, el motor de asignación cae al conteo agregado.
	WindowAssignments string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Dimensions  []JobDimension
	Installers  []JobInstaller
	Redos       []RedoEntry
	TimeEntries []InstallerTimeEntry
}

// JobDimension es una pieza de película cortada para el trabajo.
type JobDimension struct {
	ID           string
	JobEntryID   string
	LengthInches decimal.Decimal
	WidthInches  decimal.Decimal
	SqFt         decimal.Decimal // largo * ancho / 144
	FilmID       *string
	Description  string
}

// JobInstaller asocia un instalador a un trabajo con su varianza de tiempo.
// Una fila por instalador; en edición se borra y recrea el conjunto completo.
type JobInstaller struct {
	JobEntryID   string
	InstallerID  string
	TimeVariance int // minutos de diferencia contra el estimado
}

// Partes del vehículo válidas para un redo.
const (
	RedoPartWindshield  = "windshield"
	RedoPartBackGlass   = "back_glass"
	RedoPartDriverFront = "driver_front"
	RedoPartDriverRear  = "driver_rear"
	RedoPartPassFront   = "passenger_front"
	RedoPartPassRear    = "passenger_rear"
	RedoPartQuarter     = "quarter"
	RedoPartSunroof     = "sunroof"
)

// RedoEntry es un retrabajo sobre una parte específica del vehículo.
type RedoEntry struct {
	ID           string
	JobEntryID   string
	Part         string
	InstallerID  *string
	LengthInches *decimal.Decimal
	WidthInches  *decimal.Decimal
	MaterialCost decimal.Decimal
	TimeMinutes  int
	CreatedAt    time.Time
}

// InstallerTimeEntry es el tiempo asignado a un instalador para un trabajo,
// derivado por el motor de asignación. No es editable por el usuario: se
// recalcula cuando cambian la duración o las asignaciones de ventanas.
type InstallerTimeEntry struct {
	ID               string
	JobEntryID       string
	InstallerID      string
	WindowsCompleted int
	TimeMinutes      int
	CreatedAt        time.Time
}
