package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository sobre PostgreSQL (usable con pool o tx).
// Las escrituras persisten el agregado completo: padre + dimensiones +
// instaladores + redos + asignaciones de tiempo.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador de trabajos. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste el trabajo y sus hijos. El número de trabajo sale de la
// secuencia dedicada job_number_seq evaluada dentro del mismo INSERT: nunca
// se cuenta filas, así dos creaciones simultáneas no colisionan.
func (r *JobRepo) Create(job *entity.JobEntry) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	query := `
		INSERT INTO job_entries (id, job_number, date, vehicle_year, vehicle_make, vehicle_model,
			total_windows, duration_minutes, total_sqft, total_cost, notes, window_assignments,
			created_at, updated_at)
		VALUES ($1, 'JOB-' || nextval('job_number_seq'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING job_number`
	err := r.q.QueryRow(context.Background(), query,
		job.ID, job.Date, job.VehicleYear, job.VehicleMake, job.VehicleModel,
		job.TotalWindows, job.DurationMinutes, job.TotalSqFt, job.TotalCost,
		job.Notes, job.WindowAssignments, job.CreatedAt,
	).Scan(&job.JobNumber)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert job entry: %w", err)
	}
	return r.insertChildren(job)
}

// Update actualiza el padre y reemplaza TODOS los hijos (sin parches
// parciales): borrar y recrear el conjunto completo.
func (r *JobRepo) Update(job *entity.JobEntry) error {
	query := `
		UPDATE job_entries SET date = $2, vehicle_year = $3, vehicle_make = $4, vehicle_model = $5,
			total_windows = $6, duration_minutes = $7, total_sqft = $8, total_cost = $9,
			notes = $10, window_assignments = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		job.ID, job.Date, job.VehicleYear, job.VehicleMake, job.VehicleModel,
		job.TotalWindows, job.DurationMinutes, job.TotalSqFt, job.TotalCost,
		job.Notes, job.WindowAssignments, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := r.deleteChildren(job.ID); err != nil {
		return err
	}
	return r.insertChildren(job)
}

// Delete elimina el trabajo y todos sus hijos en cascada. Sin filas huérfanas.
func (r *JobRepo) Delete(id string) error {
	if err := r.deleteChildren(id); err != nil {
		return err
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM job_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene el trabajo con todos sus hijos cargados.
func (r *JobRepo) GetByID(id string) (*entity.JobEntry, error) {
	query := `
		SELECT id, job_number, date, vehicle_year, vehicle_make, vehicle_model,
			total_windows, duration_minutes, total_sqft, total_cost, notes,
			window_assignments, created_at, updated_at
		FROM job_entries WHERE id = $1`
	var j entity.JobEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.JobNumber, &j.Date, &j.VehicleYear, &j.VehicleMake, &j.VehicleModel,
		&j.TotalWindows, &j.DurationMinutes, &j.TotalSqFt, &j.TotalCost, &j.Notes,
		&j.WindowAssignments, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job entry: %w", err)
	}
	if err := r.loadChildren([]*entity.JobEntry{&j}); err != nil {
		return nil, err
	}
	return &j, nil
}

// List lista trabajos del conjunto filtrado, más recientes primero, con sus
// hijos cargados por lote (un query por tabla hija, no por trabajo).
func (r *JobRepo) List(f repository.Filter, limit, offset int) ([]*entity.JobEntry, error) {
	query := `
		SELECT id, job_number, date, vehicle_year, vehicle_make, vehicle_model,
			total_windows, duration_minutes, total_sqft, total_cost, notes,
			window_assignments, created_at, updated_at
		FROM job_entries j
		WHERE ($1 = '' OR EXISTS (
			SELECT 1 FROM job_installers ji WHERE ji.job_entry_id = j.id AND ji.installer_id = $1))
		  AND ($2::timestamptz IS NULL OR j.date >= $2)
		  AND ($3::timestamptz IS NULL OR j.date <= $3)
		ORDER BY j.date DESC, j.created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, f.InstallerID, f.DateFrom, f.DateTo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobEntry
	for rows.Next() {
		var j entity.JobEntry
		if err := rows.Scan(&j.ID, &j.JobNumber, &j.Date, &j.VehicleYear, &j.VehicleMake, &j.VehicleModel,
			&j.TotalWindows, &j.DurationMinutes, &j.TotalSqFt, &j.TotalCost, &j.Notes,
			&j.WindowAssignments, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job entry: %w", err)
		}
		list = append(list, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *JobRepo) insertChildren(job *entity.JobEntry) error {
	ctx := context.Background()
	for i := range job.Dimensions {
		d := &job.Dimensions[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.JobEntryID = job.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO job_dimensions (id, job_entry_id, length_inches, width_inches, sqft, film_id, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.JobEntryID, d.LengthInches, d.WidthInches, d.SqFt, d.FilmID, d.Description)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert job dimension: %w", err)
		}
	}
	for i := range job.Installers {
		ji := &job.Installers[i]
		ji.JobEntryID = job.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO job_installers (job_entry_id, installer_id, time_variance)
			VALUES ($1, $2, $3)`,
			ji.JobEntryID, ji.InstallerID, ji.TimeVariance)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert job installer: %w", err)
		}
	}
	for i := range job.Redos {
		rd := &job.Redos[i]
		if rd.ID == "" {
			rd.ID = uuid.New().String()
		}
		rd.JobEntryID = job.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO redo_entries (id, job_entry_id, part, installer_id, length_inches, width_inches, material_cost, time_minutes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			rd.ID, rd.JobEntryID, rd.Part, rd.InstallerID, rd.LengthInches, rd.WidthInches,
			rd.MaterialCost, rd.TimeMinutes, rd.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert redo entry: %w", err)
		}
	}
	for i := range job.TimeEntries {
		te := &job.TimeEntries[i]
		if te.ID == "" {
			te.ID = uuid.New().String()
		}
		te.JobEntryID = job.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO installer_time_entries (id, job_entry_id, installer_id, windows_completed, time_minutes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			te.ID, te.JobEntryID, te.InstallerID, te.WindowsCompleted, te.TimeMinutes, te.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert installer time entry: %w", err)
		}
	}
	return nil
}

func (r *JobRepo) deleteChildren(jobID string) error {
	ctx := context.Background()
	for _, table := range []string{"installer_time_entries", "redo_entries", "job_installers", "job_dimensions"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE job_entry_id = $1", table)
		if _, err := r.q.Exec(ctx, query, jobID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

// loadChildren carga los hijos de un lote de trabajos con un query por tabla.
func (r *JobRepo) loadChildren(list []*entity.JobEntry) error {
	if len(list) == 0 {
		return nil
	}
	ctx := context.Background()
	ids := make([]string, len(list))
	byID := make(map[string]*entity.JobEntry, len(list))
	for i, j := range list {
		ids[i] = j.ID
		byID[j.ID] = j
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, job_entry_id, length_inches, width_inches, sqft, film_id, description
		FROM job_dimensions WHERE job_entry_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("load job dimensions: %w", err)
	}
	for rows.Next() {
		var d entity.JobDimension
		if err := rows.Scan(&d.ID, &d.JobEntryID, &d.LengthInches, &d.WidthInches, &d.SqFt, &d.FilmID, &d.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scan job dimension: %w", err)
		}
		if j, ok := byID[d.JobEntryID]; ok {
			j.Dimensions = append(j.Dimensions, d)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT job_entry_id, installer_id, time_variance
		FROM job_installers WHERE job_entry_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("load job installers: %w", err)
	}
	for rows.Next() {
		var ji entity.JobInstaller
		if err := rows.Scan(&ji.JobEntryID, &ji.InstallerID, &ji.TimeVariance); err != nil {
			rows.Close()
			return fmt.Errorf("scan job installer: %w", err)
		}
		if j, ok := byID[ji.JobEntryID]; ok {
			j.Installers = append(j.Installers, ji)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, job_entry_id, part, installer_id, length_inches, width_inches, material_cost, time_minutes, created_at
		FROM redo_entries WHERE job_entry_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("load redo entries: %w", err)
	}
	for rows.Next() {
		var rd entity.RedoEntry
		if err := rows.Scan(&rd.ID, &rd.JobEntryID, &rd.Part, &rd.InstallerID, &rd.LengthInches,
			&rd.WidthInches, &rd.MaterialCost, &rd.TimeMinutes, &rd.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan redo entry: %w", err)
		}
		if j, ok := byID[rd.JobEntryID]; ok {
			j.Redos = append(j.Redos, rd)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, job_entry_id, installer_id, windows_completed, time_minutes, created_at
		FROM installer_time_entries WHERE job_entry_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("load installer time entries: %w", err)
	}
	for rows.Next() {
		var te entity.InstallerTimeEntry
		if err := rows.Scan(&te.ID, &te.JobEntryID, &te.InstallerID, &te.WindowsCompleted, &te.TimeMinutes, &te.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan installer time entry: %w", err)
		}
		if j, ok := byID[te.JobEntryID]; ok {
			j.TimeEntries = append(j.TimeEntries, te)
		}
	}
	rows.Close()
	return rows.Err()
}
