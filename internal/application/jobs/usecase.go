package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/allocation"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// Pulgadas cuadradas por pie cuadrado.
var sqInchesPerSqFt = decimal.NewFromInt(144)

// UseCase casos de uso del almacén de trabajos: creación, edición y borrado
// del agregado completo (padre + dimensiones + instaladores + redos +
// asignaciones de tiempo) en UNA transacción, más los caminos de lectura.
type UseCase struct {
	txRunner      TxRunner
	jobRepo       repository.JobRepository
	installerRepo repository.InstallerRepository
	filmRepo      repository.FilmRepository
}

// NewUseCase construye el caso de uso. jobRepo es el adaptador atado al pool
// (lecturas); las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	installerRepo repository.InstallerRepository,
	filmRepo repository.FilmRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, jobRepo: jobRepo, installerRepo: installerRepo, filmRepo: filmRepo}
}

// Create valida el payload, calcula áreas y costo de material, reparte la
// duración entre instaladores y persiste el agregado completo en una
// transacción. El número de trabajo lo asigna la secuencia dentro del mismo
// INSERT.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	job, fallback, err := uc.buildJob(in)
	if err != nil {
		return nil, err
	}
	job.ID = uuid.New().String()
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	err = uc.txRunner.RunJobs(ctx, func(jobRepo repository.JobRepository) error {
		return jobRepo.Create(job)
	})
	if err != nil {
		return nil, err
	}
	if fallback {
		log.Warn().
			Str("job_number", job.JobNumber).
			Msg("payload de asignaciones de ventanas no parseó: usando conteo agregado")
	}
	return toJobResponse(job, fallback), nil
}

// Update reemplaza el trabajo y TODOS sus hijos (sin parches parciales) y
// recalcula las asignaciones de tiempo, en una transacción.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	existing, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	job, fallback, err := uc.buildJob(in)
	if err != nil {
		return nil, err
	}
	job.ID = existing.ID
	job.JobNumber = existing.JobNumber
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now()

	err = uc.txRunner.RunJobs(ctx, func(jobRepo repository.JobRepository) error {
		return jobRepo.Update(job)
	})
	if err != nil {
		return nil, err
	}
	if fallback {
		log.Warn().
			Str("job_number", job.JobNumber).
			Msg("payload de asignaciones de ventanas no parseó: usando conteo agregado")
	}
	return toJobResponse(job, fallback), nil
}

// Delete elimina el trabajo y todos sus hijos en cascada, en una transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunJobs(ctx, func(jobRepo repository.JobRepository) error {
		return jobRepo.Delete(id)
	})
}

// GetByID obtiene un trabajo con todos sus derivados.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return toJobResponse(job, false), nil
}

// List lista trabajos del conjunto filtrado, más recientes primero.
func (uc *UseCase) List(ctx context.Context, f repository.Filter, limit, offset int) ([]dto.JobResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	jobs, err := uc.jobRepo.List(f, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, *toJobResponse(j, false))
	}
	return result, nil
}

// buildJob valida el request, calcula los derivados (áreas, costo, reparto de
// tiempo) y arma el agregado. fallback indica que el payload de asignaciones
// no parseó y el reparto quedó vacío (degradación al conteo agregado).
func (uc *UseCase) buildJob(in dto.CreateJobRequest) (job *entity.JobEntry, fallback bool, err error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, false, domain.ErrInvalidInput
	}
	if in.TotalWindows < 1 || in.DurationMinutes < 0 {
		return nil, false, domain.ErrInvalidInput
	}
	if len(in.InstallerIDs) == 0 {
		return nil, false, domain.ErrInvalidInput
	}
	for _, redo := range in.RedoEntries {
		if redo.Part == "" || redo.TimeMinutes < 0 {
			return nil, false, domain.ErrInvalidInput
		}
	}

	// Instaladores referenciados deben existir.
	seen := make(map[string]bool, len(in.InstallerIDs))
	for _, id := range in.InstallerIDs {
		if id == "" || seen[id] {
			return nil, false, domain.ErrInvalidInput
		}
		seen[id] = true
		installer, err := uc.installerRepo.GetByID(id)
		if err != nil {
			return nil, false, err
		}
		if installer == nil {
			return nil, false, domain.ErrNotFound
		}
	}

	// Dimensiones: área en pies cuadrados y costo según la película.
	films := make(map[string]*entity.Film)
	totalSqFt := decimal.Zero
	totalCost := decimal.Zero
	dimensions := make([]entity.JobDimension, 0, len(in.Dimensions))
	for _, d := range in.Dimensions {
		if d.LengthInches.LessThanOrEqual(decimal.Zero) || d.WidthInches.LessThanOrEqual(decimal.Zero) {
			return nil, false, domain.ErrInvalidInput
		}
		sqft := d.LengthInches.Mul(d.WidthInches).Div(sqInchesPerSqFt).Round(2)
		totalSqFt = totalSqFt.Add(sqft)
		if d.FilmID != nil {
			film, ok := films[*d.FilmID]
			if !ok {
				film, err = uc.filmRepo.GetByID(*d.FilmID)
				if err != nil {
					return nil, false, err
				}
				if film == nil {
					return nil, false, domain.ErrNotFound
				}
				films[*d.FilmID] = film
			}
			totalCost = totalCost.Add(sqft.Mul(film.CostPerSqFt).Round(2))
		}
		dimensions = append(dimensions, entity.JobDimension{
			LengthInches: d.LengthInches,
			WidthInches:  d.WidthInches,
			SqFt:         sqft,
			FilmID:       d.FilmID,
			Description:  d.Description,
		})
	}

	installers := make([]entity.JobInstaller, 0, len(in.InstallerIDs))
	for _, id := range in.InstallerIDs {
		installers = append(installers, entity.JobInstaller{
			InstallerID:  id,
			TimeVariance: in.InstallerTimeVariances[id],
		})
	}

	now := time.Now()
	redos := make([]entity.RedoEntry, 0, len(in.RedoEntries))
	for _, rd := range in.RedoEntries {
		cost := decimal.Zero
		if rd.MaterialCost != nil {
			cost = *rd.MaterialCost
		}
		redos = append(redos, entity.RedoEntry{
			Part:         rd.Part,
			InstallerID:  rd.InstallerID,
			LengthInches: rd.LengthInches,
			WidthInches:  rd.WidthInches,
			MaterialCost: cost,
			TimeMinutes:  rd.TimeMinutes,
			CreatedAt:    now,
		})
	}

	// Motor de reparto: un payload que no parsea degrada a "sin asignaciones"
	// (el conteo agregado queda como única fuente) y se reporta como warning.
	raw := string(in.WindowAssignments)
	assignments, parseErr := allocation.Parse(raw)
	if parseErr != nil {
		fallback = true
		assignments = nil
	}
	var timeEntries []entity.InstallerTimeEntry
	for _, a := range allocation.Split(in.DurationMinutes, assignments) {
		timeEntries = append(timeEntries, entity.InstallerTimeEntry{
			InstallerID:      a.InstallerID,
			WindowsCompleted: a.Windows,
			TimeMinutes:      a.Minutes,
			CreatedAt:        now,
		})
	}

	job = &entity.JobEntry{
		Date:              date,
		VehicleYear:       in.VehicleYear,
		VehicleMake:       in.VehicleMake,
		VehicleModel:      in.VehicleModel,
		TotalWindows:      in.TotalWindows,
		DurationMinutes:   in.DurationMinutes,
		TotalSqFt:         totalSqFt,
		TotalCost:         totalCost,
		Notes:             in.Notes,
		WindowAssignments: raw,
		Dimensions:        dimensions,
		Installers:        installers,
		Redos:             redos,
		TimeEntries:       timeEntries,
	}
	return job, fallback, nil
}

func toJobResponse(job *entity.JobEntry, fallback bool) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:                 job.ID,
		JobNumber:          job.JobNumber,
		Date:               job.Date,
		VehicleYear:        job.VehicleYear,
		VehicleMake:        job.VehicleMake,
		VehicleModel:       job.VehicleModel,
		TotalWindows:       job.TotalWindows,
		DurationMinutes:    job.DurationMinutes,
		TotalSqFt:          job.TotalSqFt,
		TotalCost:          job.TotalCost,
		Notes:              job.Notes,
		Dimensions:         make([]dto.DimensionDTO, 0, len(job.Dimensions)),
		Installers:         make([]dto.JobInstallerDTO, 0, len(job.Installers)),
		RedoEntries:        make([]dto.RedoDTO, 0, len(job.Redos)),
		TimeEntries:        make([]dto.TimeEntryDTO, 0, len(job.TimeEntries)),
		AllocationFallback: fallback,
		CreatedAt:          job.CreatedAt,
		UpdatedAt:          job.UpdatedAt,
	}
	for _, d := range job.Dimensions {
		resp.Dimensions = append(resp.Dimensions, dto.DimensionDTO{
			ID:           d.ID,
			LengthInches: d.LengthInches,
			WidthInches:  d.WidthInches,
			SqFt:         d.SqFt,
			FilmID:       d.FilmID,
			Description:  d.Description,
		})
	}
	for _, ji := range job.Installers {
		resp.Installers = append(resp.Installers, dto.JobInstallerDTO{
			InstallerID:  ji.InstallerID,
			TimeVariance: ji.TimeVariance,
		})
	}
	for _, rd := range job.Redos {
		resp.RedoEntries = append(resp.RedoEntries, dto.RedoDTO{
			ID:           rd.ID,
			Part:         rd.Part,
			InstallerID:  rd.InstallerID,
			LengthInches: rd.LengthInches,
			WidthInches:  rd.WidthInches,
			MaterialCost: rd.MaterialCost,
			TimeMinutes:  rd.TimeMinutes,
		})
	}
	for _, te := range job.TimeEntries {
		resp.TimeEntries = append(resp.TimeEntries, dto.TimeEntryDTO{
			InstallerID:      te.InstallerID,
			WindowsCompleted: te.WindowsCompleted,
			TimeMinutes:      te.TimeMinutes,
		})
	}
	return resp
}
