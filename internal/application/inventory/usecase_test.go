package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tintpro-api/internal/application/inventory"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes in-memory de los puertos de inventario
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	films  map[string]*entity.Film
	inv    map[string]*entity.FilmInventory
	ledger []*entity.InventoryTransaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		films: map[string]*entity.Film{},
		inv:   map[string]*entity.FilmInventory{},
	}
}

func (s *fakeStore) addFilm(id, name string) {
	s.films[id] = &entity.Film{ID: id, Name: name, Type: "ceramic", IsActive: true}
}

// fakeFilmRepo implementa repository.FilmRepository.
type fakeFilmRepo struct{ s *fakeStore }

func (r *fakeFilmRepo) Create(f *entity.Film) error { r.s.films[f.ID] = f; return nil }
func (r *fakeFilmRepo) GetByID(id string) (*entity.Film, error) {
	return r.s.films[id], nil
}
func (r *fakeFilmRepo) List(activeOnly bool) ([]*entity.Film, error) {
	var out []*entity.Film
	for _, f := range r.s.films {
		if !activeOnly || f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

// fakeInvRepo implementa repository.InventoryRepository.
type fakeInvRepo struct{ s *fakeStore }

func (r *fakeInvRepo) EnsureRow(filmID string) error {
	if _, ok := r.s.inv[filmID]; !ok {
		r.s.inv[filmID] = &entity.FilmInventory{
			FilmID:       filmID,
			CurrentStock: decimal.Zero,
			MinimumStock: decimal.Zero,
		}
	}
	return nil
}

func (r *fakeInvRepo) GetByFilmID(filmID string) (*entity.FilmInventory, error) {
	inv, ok := r.s.inv[filmID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvRepo) GetForUpdate(filmID string) (*entity.FilmInventory, error) {
	return r.GetByFilmID(filmID)
}

func (r *fakeInvRepo) AddDelta(filmID string, delta decimal.Decimal) (*entity.FilmInventory, error) {
	inv, ok := r.s.inv[filmID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv.CurrentStock = inv.CurrentStock.Add(delta)
	inv.UpdatedAt = time.Now()
	cp := *inv
	return &cp, nil
}

func (r *fakeInvRepo) SetStock(filmID string, stock decimal.Decimal) error {
	inv, ok := r.s.inv[filmID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.CurrentStock = stock
	return nil
}

func (r *fakeInvRepo) SetMinimum(filmID string, minimum decimal.Decimal) error {
	inv, ok := r.s.inv[filmID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.MinimumStock = minimum
	return nil
}

func (r *fakeInvRepo) ListWithFilms() ([]repository.LowStockFilm, error) {
	var out []repository.LowStockFilm
	for id, inv := range r.s.inv {
		film := r.s.films[id]
		if film == nil || !film.IsActive {
			continue
		}
		out = append(out, repository.LowStockFilm{
			FilmID:       id,
			FilmName:     film.Name,
			FilmType:     film.Type,
			CurrentStock: inv.CurrentStock,
			MinimumStock: inv.MinimumStock,
		})
	}
	return out, nil
}

// fakeLedgerRepo implementa repository.InventoryTransactionRepository.
type fakeLedgerRepo struct{ s *fakeStore }

func (r *fakeLedgerRepo) Create(tx *entity.InventoryTransaction) error {
	cp := *tx
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *fakeLedgerRepo) List(filmID string, limit int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for i := len(r.s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		t := r.s.ledger[i]
		if filmID == "" || t.FilmID == filmID {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directo, sin transacción real.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	ledgerRepo repository.InventoryTransactionRepository,
) error) error {
	return fn(&fakeInvRepo{s: r.s}, &fakeLedgerRepo{s: r.s})
}

func newUseCase(s *fakeStore) *inventory.UseCase {
	return inventory.NewUseCase(
		&fakeTxRunner{s: s},
		&fakeFilmRepo{s: s},
		&fakeInvRepo{s: s},
		&fakeLedgerRepo{s: s},
	)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario del modelo: add 100, adjust 60, mínimo 50 → approaching
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_EscenarioAddAdjustApproaching(t *testing.T) {
	s := newFakeStore()
	s.addFilm("film-x", "Ceramic Pro 70")
	uc := newUseCase(s)
	ctx := context.Background()

	// addStock(+100) desde cero
	out, err := uc.AddStock(ctx, "film-x", dec("100"), "user-1", "rollo nuevo")
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(dec("100")))

	require.Len(t, s.ledger, 1)
	tx := s.ledger[0]
	assert.Equal(t, entity.TransactionTypeAddition, tx.Type)
	assert.True(t, tx.Quantity.Equal(dec("100")))
	assert.True(t, tx.PreviousStock.Equal(decimal.Zero))
	assert.True(t, tx.NewStock.Equal(dec("100")))
	assert.Equal(t, "user-1", tx.CreatedBy)

	// adjustStock(60): delta firmado -40
	out, err = uc.AdjustStock(ctx, "film-x", dec("60"), "user-1", "conteo físico")
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(dec("60")))

	require.Len(t, s.ledger, 2)
	tx = s.ledger[1]
	assert.Equal(t, entity.TransactionTypeAdjustment, tx.Type)
	assert.True(t, tx.Quantity.Equal(dec("-40")))
	assert.True(t, tx.PreviousStock.Equal(dec("100")))
	assert.True(t, tx.NewStock.Equal(dec("60")))

	// con minimum=50, 60 <= 75 → approaching
	_, err = uc.SetMinimumStock(ctx, "film-x", dec("50"))
	require.NoError(t, err)

	low, err := uc.GetLowStockFilms(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, entity.StockStatusApproaching, low[0].Status)
}

// Invariante del ledger: tras cualquier secuencia de add/adjust el stock
// actual iguala el newStock de la última transacción y la suma de deltas
// firmados desde cero.
func TestLedger_InvarianteSumaDeltas(t *testing.T) {
	s := newFakeStore()
	s.addFilm("film-x", "Carbon 35")
	uc := newUseCase(s)
	ctx := context.Background()

	steps := []struct {
		adjust bool
		value  string
	}{
		{false, "100"},
		{true, "60"},
		{false, "25.5"},
		{true, "0"},
		{false, "10"},
		{true, "7.25"},
	}
	for _, st := range steps {
		var err error
		if st.adjust {
			_, err = uc.AdjustStock(ctx, "film-x", dec(st.value), "user-1", "")
		} else {
			_, err = uc.AddStock(ctx, "film-x", dec(st.value), "user-1", "")
		}
		require.NoError(t, err)
	}

	require.Len(t, s.ledger, len(steps))
	current := s.inv["film-x"].CurrentStock
	last := s.ledger[len(s.ledger)-1]
	assert.True(t, current.Equal(last.NewStock), "stock actual debe igualar el newStock de la última transacción")

	sum := decimal.Zero
	for _, tx := range s.ledger {
		sum = sum.Add(tx.Quantity)
		assert.True(t, tx.NewStock.Equal(tx.PreviousStock.Add(tx.Quantity)),
			"cada fila debe encuadrar el cambio: previous + delta == new")
	}
	assert.True(t, current.Equal(sum), "stock actual debe igualar la suma de deltas desde cero")
	assert.True(t, current.Equal(dec("7.25")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos antes de cualquier escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_RechazaCantidadNoPositiva(t *testing.T) {
	s := newFakeStore()
	s.addFilm("film-x", "Ceramic Pro 70")
	uc := newUseCase(s)

	for _, qty := range []string{"0", "-5"} {
		_, err := uc.AddStock(context.Background(), "film-x", dec(qty), "user-1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %s debe rechazarse", qty)
	}
	assert.Empty(t, s.ledger, "sin escrituras en el ledger tras un rechazo")
	assert.Empty(t, s.inv, "sin fila de inventario creada tras un rechazo")
}

func TestAdjustStock_RechazaObjetivoNegativo(t *testing.T) {
	s := newFakeStore()
	s.addFilm("film-x", "Ceramic Pro 70")
	uc := newUseCase(s)

	_, err := uc.AdjustStock(context.Background(), "film-x", dec("-1"), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.ledger)
}

func TestAddStock_FilmInexistente(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	_, err := uc.AddStock(context.Background(), "no-existe", dec("10"), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.ledger)
}

// setMinimumStock es configuración, no mutación de stock: no emite fila.
func TestSetMinimumStock_NoEmiteLedger(t *testing.T) {
	s := newFakeStore()
	s.addFilm("film-x", "Ceramic Pro 70")
	uc := newUseCase(s)

	out, err := uc.SetMinimumStock(context.Background(), "film-x", dec("40"))
	require.NoError(t, err)
	assert.True(t, out.MinimumStock.Equal(dec("40")))
	assert.Empty(t, s.ledger)

	_, err = uc.SetMinimumStock(context.Background(), "film-x", dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockFilms_Estados(t *testing.T) {
	cases := []struct {
		name    string
		current string
		minimum string
		want    string
	}{
		{"sin umbral configurado", "10", "0", entity.StockStatusUnknown},
		{"igual al mínimo", "50", "50", entity.StockStatusLow},
		{"bajo el mínimo", "20", "50", entity.StockStatusLow},
		{"dentro del factor 1.5", "75", "50", entity.StockStatusApproaching},
		{"holgado", "76", "50", entity.StockStatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newFakeStore()
			s.addFilm("f", "Film")
			s.inv["f"] = &entity.FilmInventory{
				FilmID:       "f",
				CurrentStock: dec(tc.current),
				MinimumStock: dec(tc.minimum),
			}
			uc := newUseCase(s)

			low, err := uc.GetLowStockFilms(context.Background())
			require.NoError(t, err)
			require.Len(t, low, 1)
			assert.Equal(t, tc.want, low[0].Status)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransactions_MasRecientesPrimero(t *testing.T) {
	s := newFakeStore()
	s.addFilm("a", "Film A")
	s.addFilm("b", "Film B")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, "a", dec("10"), "user-1", "")
	require.NoError(t, err)
	_, err = uc.AddStock(ctx, "b", dec("20"), "user-1", "")
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, "a", dec("5"), "user-1", "")
	require.NoError(t, err)

	all, err := uc.GetTransactions(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.TransactionTypeAdjustment, all[0].Type, "la más reciente primero")

	onlyA, err := uc.GetTransactions(ctx, "a", 50)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	for _, tx := range onlyA {
		assert.Equal(t, "a", tx.FilmID)
	}
}
