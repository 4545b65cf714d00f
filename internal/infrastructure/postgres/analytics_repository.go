package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el agregador de métricas.
// Sin caché: cada llamada calcula sobre el estado actual. Los inner joins a
// installers y job_entries excluyen filas con padres faltantes; COALESCE
// devuelve cero cuando el conjunto filtrado está vacío.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// jobFilterClause acota job_entries j al conjunto filtrado. Parámetros fijos:
// $1 installer_id ('' = todos), $2 date_from, $3 date_to (NULL = sin límite).
const jobFilterClause = `
	  ($1 = '' OR EXISTS (
	      SELECT 1 FROM job_installers jf WHERE jf.job_entry_id = j.id AND jf.installer_id = $1))
	  AND ($2::timestamptz IS NULL OR j.date >= $2)
	  AND ($3::timestamptz IS NULL OR j.date <= $3)`

// GetJobTotals calcula los totales del conjunto filtrado. Todos los conteos
// salen del MISMO conjunto de trabajos (CTE) para que no deriven entre sí.
func (r *AnalyticsRepo) GetJobTotals(ctx context.Context, f repository.Filter) (repository.JobTotalsResult, error) {
	query := `
	WITH jobs AS (
	    SELECT j.id, j.total_windows FROM job_entries j
	    WHERE` + jobFilterClause + `
	)
	SELECT
	    (SELECT COUNT(*) FROM jobs)                                              AS total_vehicles,
	    COALESCE((SELECT SUM(total_windows) FROM jobs), 0)                       AS total_windows,
	    (SELECT COUNT(*) FROM redo_entries r JOIN jobs ON jobs.id = r.job_entry_id) AS total_redos,
	    COALESCE((SELECT ROUND(AVG(ji.time_variance)::numeric, 1)
	        FROM job_installers ji
	        JOIN jobs ON jobs.id = ji.job_entry_id
	        JOIN installers i ON i.id = ji.installer_id), 0)                     AS avg_time_variance,
	    (SELECT COUNT(DISTINCT ji.installer_id)
	        FROM job_installers ji
	        JOIN jobs ON jobs.id = ji.job_entry_id
	        JOIN installers i ON i.id = ji.installer_id)                         AS active_installers,
	    (SELECT COUNT(*) FROM jobs
	        WHERE NOT EXISTS (SELECT 1 FROM redo_entries r WHERE r.job_entry_id = jobs.id)) AS jobs_without_redos`

	var res repository.JobTotalsResult
	err := r.pool.QueryRow(ctx, query, f.InstallerID, f.DateFrom, f.DateTo).Scan(
		&res.TotalVehicles, &res.TotalWindows, &res.TotalRedos,
		&res.AvgTimeVariance, &res.ActiveInstallers, &res.JobsWithoutRedos,
	)
	if err != nil {
		return repository.JobTotalsResult{}, fmt.Errorf("analytics.GetJobTotals: %w", err)
	}
	return res, nil
}

// GetInstallerPerformance devuelve una fila por instalador con trabajos
// distintos, suma de ventanas y redos atribuidos, sobre el conjunto filtrado.
func (r *AnalyticsRepo) GetInstallerPerformance(ctx context.Context, f repository.Filter) ([]repository.InstallerPerformanceResult, error) {
	query := `
	SELECT
	    i.id,
	    i.name,
	    COUNT(DISTINCT j.id)                AS vehicle_count,
	    COALESCE(SUM(j.total_windows), 0)   AS total_windows,
	    COALESCE((SELECT COUNT(*)
	        FROM redo_entries r
	        JOIN job_entries j2 ON j2.id = r.job_entry_id
	        WHERE r.installer_id = i.id
	          AND ($2::timestamptz IS NULL OR j2.date >= $2)
	          AND ($3::timestamptz IS NULL OR j2.date <= $3)), 0) AS redo_count
	FROM installers i
	JOIN job_installers ji ON ji.installer_id = i.id
	JOIN job_entries j ON j.id = ji.job_entry_id
	WHERE` + jobFilterClause + `
	GROUP BY i.id, i.name`

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetInstallerPerformance: %w", err)
	}
	defer rows.Close()

	var results []repository.InstallerPerformanceResult
	for rows.Next() {
		var row repository.InstallerPerformanceResult
		if err := rows.Scan(&row.InstallerID, &row.InstallerName, &row.VehicleCount, &row.TotalWindows, &row.RedoCount); err != nil {
			return nil, fmt.Errorf("analytics.GetInstallerPerformance scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetRedoBreakdown agrupa redos por parte del vehículo. Orden documentado:
// count DESC, empate por parte ASC (regla estable, no orden incidental).
func (r *AnalyticsRepo) GetRedoBreakdown(ctx context.Context, f repository.Filter) ([]repository.RedoBreakdownResult, error) {
	query := `
	SELECT r.part, COUNT(*) AS redo_count
	FROM redo_entries r
	JOIN job_entries j ON j.id = r.job_entry_id
	WHERE ($1 = '' OR r.installer_id = $1)
	  AND ($2::timestamptz IS NULL OR j.date >= $2)
	  AND ($3::timestamptz IS NULL OR j.date <= $3)
	GROUP BY r.part
	ORDER BY redo_count DESC, r.part ASC`

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRedoBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.RedoBreakdownResult
	for rows.Next() {
		var row repository.RedoBreakdownResult
		if err := rows.Scan(&row.Part, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetRedoBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetJobWindowRows devuelve una fila por trabajo con el total agregado, el
// conteo explícito de asignaciones (0 si no hay) y los redos. El caso de uso
// reconcilia las dos representaciones con allocation.ResolveWindowCount.
func (r *AnalyticsRepo) GetJobWindowRows(ctx context.Context, f repository.Filter) ([]repository.JobWindowResult, error) {
	query := `
	SELECT
	    j.id,
	    j.total_windows,
	    COALESCE((SELECT SUM(te.windows_completed)
	        FROM installer_time_entries te WHERE te.job_entry_id = j.id), 0) AS assigned_windows,
	    (SELECT COUNT(*) FROM redo_entries r WHERE r.job_entry_id = j.id)    AS redo_count
	FROM job_entries j
	WHERE` + jobFilterClause

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetJobWindowRows: %w", err)
	}
	defer rows.Close()

	var results []repository.JobWindowResult
	for rows.Next() {
		var row repository.JobWindowResult
		if err := rows.Scan(&row.JobEntryID, &row.TotalWindows, &row.AssignedWindows, &row.RedoCount); err != nil {
			return nil, fmt.Errorf("analytics.GetJobWindowRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInstallerWindowRows devuelve ventanas completadas y redos por instalador.
// Solo cuenta trabajos con asignación explícita: el fallback agregado no
// atribuye ventanas a nadie.
func (r *AnalyticsRepo) GetInstallerWindowRows(ctx context.Context, f repository.Filter) ([]repository.InstallerWindowResult, error) {
	query := `
	SELECT
	    i.id,
	    i.name,
	    COALESCE(SUM(te.windows_completed), 0) AS windows_completed,
	    COALESCE((SELECT COUNT(*)
	        FROM redo_entries r
	        JOIN job_entries j2 ON j2.id = r.job_entry_id
	        WHERE r.installer_id = i.id
	          AND ($2::timestamptz IS NULL OR j2.date >= $2)
	          AND ($3::timestamptz IS NULL OR j2.date <= $3)), 0) AS redo_count
	FROM installers i
	JOIN installer_time_entries te ON te.installer_id = i.id
	JOIN job_entries j ON j.id = te.job_entry_id
	WHERE` + jobFilterClause + `
	GROUP BY i.id, i.name`

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetInstallerWindowRows: %w", err)
	}
	defer rows.Close()

	var results []repository.InstallerWindowResult
	for rows.Next() {
		var row repository.InstallerWindowResult
		if err := rows.Scan(&row.InstallerID, &row.InstallerName, &row.WindowsCompleted, &row.RedoCount); err != nil {
			return nil, fmt.Errorf("analytics.GetInstallerWindowRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInstallerTimeRows devuelve los agregados de tiempo por instalador a
// partir de installer_time_entries (registros derivados del motor de reparto).
func (r *AnalyticsRepo) GetInstallerTimeRows(ctx context.Context, f repository.Filter) ([]repository.InstallerTimeResult, error) {
	query := `
	SELECT
	    i.id,
	    i.name,
	    COALESCE(SUM(te.time_minutes), 0)      AS total_minutes,
	    COALESCE(SUM(te.windows_completed), 0) AS total_windows,
	    COUNT(DISTINCT te.job_entry_id)        AS job_count
	FROM installers i
	JOIN installer_time_entries te ON te.installer_id = i.id
	JOIN job_entries j ON j.id = te.job_entry_id
	WHERE` + jobFilterClause + `
	GROUP BY i.id, i.name`

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetInstallerTimeRows: %w", err)
	}
	defer rows.Close()

	var results []repository.InstallerTimeResult
	for rows.Next() {
		var row repository.InstallerTimeResult
		if err := rows.Scan(&row.InstallerID, &row.InstallerName, &row.TotalMinutes, &row.TotalWindows, &row.JobCount); err != nil {
			return nil, fmt.Errorf("analytics.GetInstallerTimeRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetFilmConsumption suma área y costo de material por película sobre las
// dimensiones del conjunto filtrado de trabajos.
func (r *AnalyticsRepo) GetFilmConsumption(ctx context.Context, f repository.Filter) ([]repository.FilmConsumptionResult, error) {
	query := `
	SELECT
	    fm.id,
	    fm.name,
	    fm.type,
	    COALESCE(SUM(d.sqft), 0)                        AS total_sqft,
	    COALESCE(SUM(d.sqft * fm.cost_per_sqft), 0)     AS total_cost,
	    COUNT(DISTINCT j.id)                            AS job_count
	FROM job_dimensions d
	JOIN films fm ON fm.id = d.film_id
	JOIN job_entries j ON j.id = d.job_entry_id
	WHERE` + jobFilterClause + `
	GROUP BY fm.id, fm.name, fm.type
	ORDER BY total_sqft DESC`

	rows, err := r.pool.Query(ctx, query, f.InstallerID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetFilmConsumption: %w", err)
	}
	defer rows.Close()

	var results []repository.FilmConsumptionResult
	for rows.Next() {
		var row repository.FilmConsumptionResult
		if err := rows.Scan(&row.FilmID, &row.FilmName, &row.FilmType, &row.TotalSqFt, &row.TotalCost, &row.JobCount); err != nil {
			return nil, fmt.Errorf("analytics.GetFilmConsumption scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
