// Package analytics contiene los casos de uso del agregador de métricas de
// desempeño: tasas de éxito, varianza de tiempo, rankings de instaladores y
// consumo de material. Todas las lecturas son frescas (sin caché) y los datos
// ausentes producen ceros, nunca errores.
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/domain/allocation"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

const defaultTopPerformers = 10

var hundred = decimal.NewFromInt(100)

// UseCase agregador de métricas sobre el repositorio de analítica (read-only).
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// GetPerformanceMetrics devuelve los totales del conjunto filtrado de trabajos.
func (uc *UseCase) GetPerformanceMetrics(ctx context.Context, f repository.Filter) (*dto.PerformanceMetricsDTO, error) {
	totals, err := uc.analyticsRepo.GetJobTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.PerformanceMetricsDTO{
		TotalVehicles:    totals.TotalVehicles,
		TotalWindows:     totals.TotalWindows,
		TotalRedos:       totals.TotalRedos,
		AvgTimeVariance:  totals.AvgTimeVariance,
		ActiveInstallers: totals.ActiveInstallers,
		JobsWithoutRedos: totals.JobsWithoutRedos,
	}, nil
}

// GetTopPerformers devuelve el ranking de instaladores. SuccessRate con tope
// en ambos lados [0, 100]; por convención documentada es 100 cuando el
// instalador no tiene ventanas. Orden: (vehicleCount - redoCount) DESC,
// empate por successRate DESC; se trunca a limit.
func (uc *UseCase) GetTopPerformers(ctx context.Context, limit int, f repository.Filter) ([]dto.TopPerformerDTO, error) {
	if limit <= 0 {
		limit = defaultTopPerformers
	}
	rows, err := uc.analyticsRepo.GetInstallerPerformance(ctx, f)
	if err != nil {
		return nil, err
	}
	performers := make([]dto.TopPerformerDTO, 0, len(rows))
	for _, row := range rows {
		performers = append(performers, dto.TopPerformerDTO{
			InstallerID:   row.InstallerID,
			InstallerName: row.InstallerName,
			VehicleCount:  row.VehicleCount,
			TotalWindows:  row.TotalWindows,
			RedoCount:     row.RedoCount,
			SuccessRate:   clampedSuccessRate(row.TotalWindows, row.RedoCount),
		})
	}
	sort.SliceStable(performers, func(i, j int) bool {
		scoreI := performers[i].VehicleCount - performers[i].RedoCount
		scoreJ := performers[j].VehicleCount - performers[j].RedoCount
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		return performers[i].SuccessRate.GreaterThan(performers[j].SuccessRate)
	})
	if len(performers) > limit {
		performers = performers[:limit]
	}
	return performers, nil
}

// GetRedoBreakdown devuelve los redos agrupados por parte del vehículo,
// count DESC con empate alfabético por parte (el orden lo fija la consulta).
func (uc *UseCase) GetRedoBreakdown(ctx context.Context, f repository.Filter) ([]dto.RedoBreakdownDTO, error) {
	rows, err := uc.analyticsRepo.GetRedoBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RedoBreakdownDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.RedoBreakdownDTO{Part: row.Part, Count: row.Count})
	}
	return result, nil
}

// GetWindowPerformanceAnalytics reconcilia la representación dual de
// "ventanas completadas": por trabajo se prefiere el conteo explícito de
// asignaciones y se cae al total agregado cuando no hay (la resolución vive
// en allocation.ResolveWindowCount, un solo punto). Las tasas aquí solo
// tienen piso en 0, sin tope superior: una tasa con más redos que ventanas
// queda visible en la misma fila en vez de enmascararse.
func (uc *UseCase) GetWindowPerformanceAnalytics(ctx context.Context, f repository.Filter) (*dto.WindowPerformanceDTO, error) {
	jobRows, err := uc.analyticsRepo.GetJobWindowRows(ctx, f)
	if err != nil {
		return nil, err
	}
	totalWindows, totalRedos, fallbackJobs := 0, 0, 0
	for _, row := range jobRows {
		wc := allocation.ResolveWindowCount(row.AssignedWindows, row.TotalWindows)
		if wc.Source == allocation.SourceAggregateFallback {
			fallbackJobs++
		}
		totalWindows += wc.Count
		totalRedos += row.RedoCount
	}

	installerRows, err := uc.analyticsRepo.GetInstallerWindowRows(ctx, f)
	if err != nil {
		return nil, err
	}
	installers := make([]dto.InstallerWindowPerformanceDTO, 0, len(installerRows))
	for _, row := range installerRows {
		installers = append(installers, dto.InstallerWindowPerformanceDTO{
			InstallerID:      row.InstallerID,
			InstallerName:    row.InstallerName,
			WindowsCompleted: row.WindowsCompleted,
			RedoCount:        row.RedoCount,
			SuccessRate:      flooredSuccessRate(row.WindowsCompleted, row.RedoCount),
		})
	}
	sort.SliceStable(installers, func(i, j int) bool {
		if installers[i].WindowsCompleted != installers[j].WindowsCompleted {
			return installers[i].WindowsCompleted > installers[j].WindowsCompleted
		}
		return installers[i].InstallerName < installers[j].InstallerName
	})

	return &dto.WindowPerformanceDTO{
		TotalWindows: totalWindows,
		TotalRedos:   totalRedos,
		SuccessRate:  flooredSuccessRate(totalWindows, totalRedos),
		FallbackJobs: fallbackJobs,
		Installers:   installers,
	}, nil
}

// GetInstallerTimePerformance devuelve la eficiencia de tiempo por instalador,
// ascendente por AvgTimePerWindow (menos minutos por ventana es mejor). Los
// instaladores sin actividad no aparecen: el join con installer_time_entries
// ya los filtra.
func (uc *UseCase) GetInstallerTimePerformance(ctx context.Context, f repository.Filter) ([]dto.InstallerTimePerformanceDTO, error) {
	rows, err := uc.analyticsRepo.GetInstallerTimeRows(ctx, f)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InstallerTimePerformanceDTO, 0, len(rows))
	for _, row := range rows {
		avg := decimal.Zero
		if row.TotalWindows > 0 {
			avg = decimal.NewFromInt(int64(row.TotalMinutes)).
				Div(decimal.NewFromInt(int64(row.TotalWindows))).
				Round(1)
		}
		result = append(result, dto.InstallerTimePerformanceDTO{
			InstallerID:      row.InstallerID,
			InstallerName:    row.InstallerName,
			TotalMinutes:     row.TotalMinutes,
			TotalWindows:     row.TotalWindows,
			AvgTimePerWindow: avg,
			JobCount:         row.JobCount,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].AvgTimePerWindow.Equal(result[j].AvgTimePerWindow) {
			return result[i].AvgTimePerWindow.LessThan(result[j].AvgTimePerWindow)
		}
		return result[i].InstallerName < result[j].InstallerName
	})
	return result, nil
}

// GetFilmConsumption devuelve área y costo de material por película sobre el
// conjunto filtrado de trabajos.
func (uc *UseCase) GetFilmConsumption(ctx context.Context, f repository.Filter) ([]dto.FilmConsumptionDTO, error) {
	rows, err := uc.analyticsRepo.GetFilmConsumption(ctx, f)
	if err != nil {
		return nil, err
	}
	result := make([]dto.FilmConsumptionDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.FilmConsumptionDTO{
			FilmID:    row.FilmID,
			FilmName:  row.FilmName,
			FilmType:  row.FilmType,
			TotalSqFt: row.TotalSqFt,
			TotalCost: row.TotalCost,
			JobCount:  row.JobCount,
		})
	}
	return result, nil
}

// clampedSuccessRate calcula (windows - redos) / windows * 100 con tope en
// ambos lados [0, 100]; 100 cuando windows == 0 (convención documentada).
func clampedSuccessRate(windows, redos int) decimal.Decimal {
	if windows == 0 {
		return hundred
	}
	rate := flooredSuccessRate(windows, redos)
	if rate.GreaterThan(hundred) {
		return hundred
	}
	return rate
}

// flooredSuccessRate calcula la tasa con piso en 0 y sin tope superior.
// windows == 0 devuelve 0 (no hay base de cálculo).
func flooredSuccessRate(windows, redos int) decimal.Decimal {
	if windows == 0 {
		return decimal.Zero
	}
	rate := decimal.NewFromInt(int64(windows - redos)).
		Div(decimal.NewFromInt(int64(windows))).
		Mul(hundred).
		Round(1)
	if rate.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return rate
}
