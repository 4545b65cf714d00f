package jobs_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/application/jobs"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes in-memory de los puertos
// ──────────────────────────────────────────────────────────────────────────────

// fakeJobRepo guarda el agregado completo; asigna números JOB-n secuenciales
// en Create, como lo hace la secuencia de la base de datos.
type fakeJobRepo struct {
	jobs map[string]*entity.JobEntry
	seq  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*entity.JobEntry{}}
}

func (r *fakeJobRepo) Create(job *entity.JobEntry) error {
	r.seq++
	job.JobNumber = fmt.Sprintf("JOB-%d", r.seq)
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Update(job *entity.JobEntry) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) GetByID(id string) (*entity.JobEntry, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (r *fakeJobRepo) List(f repository.Filter, limit, offset int) ([]*entity.JobEntry, error) {
	var out []*entity.JobEntry
	for _, j := range r.jobs {
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

type fakeInstallerRepo struct{ installers map[string]*entity.Installer }

func (r *fakeInstallerRepo) Create(i *entity.Installer) error { r.installers[i.ID] = i; return nil }
func (r *fakeInstallerRepo) GetByID(id string) (*entity.Installer, error) {
	return r.installers[id], nil
}
func (r *fakeInstallerRepo) List(activeOnly bool) ([]*entity.Installer, error) { return nil, nil }

type fakeFilmRepo struct{ films map[string]*entity.Film }

func (r *fakeFilmRepo) Create(f *entity.Film) error             { r.films[f.ID] = f; return nil }
func (r *fakeFilmRepo) GetByID(id string) (*entity.Film, error) { return r.films[id], nil }
func (r *fakeFilmRepo) List(activeOnly bool) ([]*entity.Film, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directo contra el repo compartido.
type fakeTxRunner struct{ repo *fakeJobRepo }

func (r *fakeTxRunner) RunJobs(ctx context.Context, fn func(jobRepo repository.JobRepository) error) error {
	return fn(r.repo)
}

type fixture struct {
	jobRepo *fakeJobRepo
	uc      *jobs.UseCase
}

func newFixture() *fixture {
	jobRepo := newFakeJobRepo()
	installers := &fakeInstallerRepo{installers: map[string]*entity.Installer{
		"inst-a": {ID: "inst-a", Name: "Ana", IsActive: true},
		"inst-b": {ID: "inst-b", Name: "Bruno", IsActive: true},
	}}
	films := &fakeFilmRepo{films: map[string]*entity.Film{
		"film-1": {ID: "film-1", Name: "Ceramic Pro 70", Type: "ceramic", CostPerSqFt: decimal.NewFromInt(2), IsActive: true},
	}}
	return &fixture{
		jobRepo: jobRepo,
		uc:      jobs.NewUseCase(&fakeTxRunner{repo: jobRepo}, jobRepo, installers, films),
	}
}

// assignments arma un payload de asignaciones: n ventanas por instalador.
func assignments(t *testing.T, perInstaller map[string]int) json.RawMessage {
	t.Helper()
	type assignment struct {
		WindowID    string  `json:"windowId"`
		InstallerID *string `json:"installerId"`
		WindowName  string  `json:"windowName"`
	}
	var list []assignment
	n := 0
	for _, id := range []string{"inst-a", "inst-b"} {
		count := perInstaller[id]
		inst := id
		for i := 0; i < count; i++ {
			n++
			list = append(list, assignment{
				WindowID:    fmt.Sprintf("w%d", n),
				InstallerID: &inst,
				WindowName:  fmt.Sprintf("Ventana %d", n),
			})
		}
	}
	raw, err := json.Marshal(list)
	require.NoError(t, err)
	return raw
}

func baseRequest(t *testing.T) dto.CreateJobRequest {
	return dto.CreateJobRequest{
		Date:            "2026-03-15",
		VehicleYear:     2022,
		VehicleMake:     "Toyota",
		VehicleModel:    "Camry",
		TotalWindows:    7,
		DurationMinutes: 70,
		InstallerIDs:    []string{"inst-a", "inst-b"},
		WindowAssignments: assignments(t, map[string]int{
			"inst-a": 4,
			"inst-b": 3,
		}),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RepartoDeTiempoProporcional(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "JOB-1", resp.JobNumber)
	assert.False(t, resp.AllocationFallback)

	// 70 min entre 4 y 3 ventanas → 40 y 30, suma exacta
	require.Len(t, resp.TimeEntries, 2)
	byInstaller := map[string]dto.TimeEntryDTO{}
	sum := 0
	for _, te := range resp.TimeEntries {
		byInstaller[te.InstallerID] = te
		sum += te.TimeMinutes
	}
	assert.Equal(t, 70, sum, "la suma de minutos repartidos debe igualar la duración")
	assert.Equal(t, 40, byInstaller["inst-a"].TimeMinutes)
	assert.Equal(t, 4, byInstaller["inst-a"].WindowsCompleted)
	assert.Equal(t, 30, byInstaller["inst-b"].TimeMinutes)
	assert.Equal(t, 3, byInstaller["inst-b"].WindowsCompleted)

	// El agregado persistido lleva los mismos hijos
	stored := f.jobRepo.jobs[resp.ID]
	require.NotNil(t, stored)
	assert.Len(t, stored.TimeEntries, 2)
	assert.Len(t, stored.Installers, 2)
}

func TestCreate_NumeracionSecuencial(t *testing.T) {
	f := newFixture()

	for i := 1; i <= 3; i++ {
		resp, err := f.uc.Create(context.Background(), baseRequest(t))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("JOB-%d", i), resp.JobNumber)
	}
}

func TestCreate_DimensionesYCosto(t *testing.T) {
	f := newFixture()
	filmID := "film-1"

	in := baseRequest(t)
	in.Dimensions = []dto.DimensionRequest{
		// 36x18 pulgadas = 4.5 sqft; a $2/sqft = $9
		{LengthInches: decimal.NewFromInt(36), WidthInches: decimal.NewFromInt(18), FilmID: &filmID},
		// 24x12 = 2 sqft, sin película: suma área pero no costo
		{LengthInches: decimal.NewFromInt(24), WidthInches: decimal.NewFromInt(12)},
	}

	resp, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, resp.Dimensions, 2)
	assert.True(t, resp.Dimensions[0].SqFt.Equal(decimal.NewFromFloat(4.5)))
	assert.True(t, resp.TotalSqFt.Equal(decimal.NewFromFloat(6.5)))
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(9)))
}

// Un payload de asignaciones corrupto no tumba la creación: el trabajo se
// persiste sin reparto y el response lo marca como fallback.
func TestCreate_PayloadCorruptoDegradaAFallback(t *testing.T) {
	f := newFixture()

	in := baseRequest(t)
	in.WindowAssignments = json.RawMessage(`{"esto no es": "un array"`)

	resp, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, resp.AllocationFallback)
	assert.Empty(t, resp.TimeEntries)

	stored := f.jobRepo.jobs[resp.ID]
	require.NotNil(t, stored)
	assert.Empty(t, stored.TimeEntries)
	assert.Equal(t, 7, stored.TotalWindows, "el conteo agregado queda como única fuente")
}

func TestCreate_Rechazos(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*dto.CreateJobRequest)
		want   error
	}{
		{"fecha inválida", func(in *dto.CreateJobRequest) { in.Date = "15/03/2026" }, domain.ErrInvalidInput},
		{"sin ventanas", func(in *dto.CreateJobRequest) { in.TotalWindows = 0 }, domain.ErrInvalidInput},
		{"duración negativa", func(in *dto.CreateJobRequest) { in.DurationMinutes = -1 }, domain.ErrInvalidInput},
		{"sin instaladores", func(in *dto.CreateJobRequest) { in.InstallerIDs = nil }, domain.ErrInvalidInput},
		{"instalador repetido", func(in *dto.CreateJobRequest) { in.InstallerIDs = []string{"inst-a", "inst-a"} }, domain.ErrInvalidInput},
		{"instalador inexistente", func(in *dto.CreateJobRequest) { in.InstallerIDs = []string{"no-existe"} }, domain.ErrNotFound},
		{"redo sin parte", func(in *dto.CreateJobRequest) { in.RedoEntries = []dto.RedoRequest{{Part: ""}} }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseRequest(t)
			tc.mutate(&in)
			_, err := f.uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.jobRepo.jobs, "ningún rechazo debe dejar filas persistidas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaHijosYConservaNumero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, baseRequest(t))
	require.NoError(t, err)

	// Ahora todo lo hace un solo instalador en 45 minutos
	in := baseRequest(t)
	in.DurationMinutes = 45
	in.InstallerIDs = []string{"inst-b"}
	in.WindowAssignments = assignments(t, map[string]int{"inst-b": 7})

	updated, err := f.uc.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.JobNumber, updated.JobNumber, "el número asignado nunca cambia")
	require.Len(t, updated.TimeEntries, 1)
	assert.Equal(t, "inst-b", updated.TimeEntries[0].InstallerID)
	assert.Equal(t, 45, updated.TimeEntries[0].TimeMinutes)

	stored := f.jobRepo.jobs[created.ID]
	require.Len(t, stored.Installers, 1, "los hijos anteriores se reemplazan por completo")
	assert.Equal(t, "inst-b", stored.Installers[0].InstallerID)
}

func TestUpdate_TrabajoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Update(context.Background(), "no-existe", baseRequest(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_EliminaElAgregadoCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, baseRequest(t))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, created.ID))
	assert.Empty(t, f.jobRepo.jobs)

	_, err = f.uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.uc.Delete(ctx, created.ID), domain.ErrNotFound)
}
