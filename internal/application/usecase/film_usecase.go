package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// Tipos de película aceptados.
var validFilmTypes = map[string]bool{
	"ceramic": true,
	"carbon":  true,
	"dyed":    true,
	"hybrid":  true,
}

// FilmUseCase casos de uso CRUD para películas. El stock NO se toca aquí:
// toda mutación de nivel pasa por el ledger de inventario.
type FilmUseCase struct {
	filmRepo repository.FilmRepository
	invRepo  repository.InventoryRepository
}

// NewFilmUseCase construye el caso de uso.
func NewFilmUseCase(filmRepo repository.FilmRepository, invRepo repository.InventoryRepository) *FilmUseCase {
	return &FilmUseCase{filmRepo: filmRepo, invRepo: invRepo}
}

// Create crea una película y siembra su fila de inventario en cero, anclando
// el invariante "stock == suma de deltas desde 0" del ledger.
func (uc *FilmUseCase) Create(in dto.CreateFilmRequest) (*dto.FilmResponse, error) {
	if in.Name == "" || !validFilmTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerSqFt.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	film := &entity.Film{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Type:            in.Type,
		CostPerSqFt:     in.CostPerSqFt,
		IsActive:        true,
		WeightPerSqFt:   in.WeightPerSqFt,
		RollWidthInches: in.RollWidthInches,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.filmRepo.Create(film); err != nil {
		return nil, err
	}
	if err := uc.invRepo.EnsureRow(film.ID); err != nil {
		return nil, err
	}
	return uc.toFilmResponse(film)
}

// GetByID obtiene una película con su estado de inventario.
func (uc *FilmUseCase) GetByID(id string) (*dto.FilmResponse, error) {
	film, err := uc.filmRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, nil
	}
	return uc.toFilmResponse(film)
}

// List lista películas con su estado de inventario.
func (uc *FilmUseCase) List(activeOnly bool) ([]dto.FilmResponse, error) {
	films, err := uc.filmRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	// Stock por película en un solo query, no uno por fila.
	invRows, err := uc.invRepo.ListWithFilms()
	if err != nil {
		return nil, err
	}
	stockByFilm := make(map[string]repository.LowStockFilm, len(invRows))
	for _, row := range invRows {
		stockByFilm[row.FilmID] = row
	}
	result := make([]dto.FilmResponse, 0, len(films))
	for _, f := range films {
		resp := baseFilmResponse(f)
		if inv, ok := stockByFilm[f.ID]; ok {
			resp.CurrentStock = inv.CurrentStock
			resp.MinimumStock = inv.MinimumStock
		}
		result = append(result, resp)
	}
	return result, nil
}

func (uc *FilmUseCase) toFilmResponse(film *entity.Film) (*dto.FilmResponse, error) {
	resp := baseFilmResponse(film)
	inv, err := uc.invRepo.GetByFilmID(film.ID)
	if err != nil {
		return nil, err
	}
	if inv != nil {
		resp.CurrentStock = inv.CurrentStock
		resp.MinimumStock = inv.MinimumStock
	}
	return &resp, nil
}

func baseFilmResponse(f *entity.Film) dto.FilmResponse {
	return dto.FilmResponse{
		ID:              f.ID,
		Name:            f.Name,
		Type:            f.Type,
		CostPerSqFt:     f.CostPerSqFt,
		IsActive:        f.IsActive,
		WeightPerSqFt:   f.WeightPerSqFt,
		RollWidthInches: f.RollWidthInches,
		CurrentStock:    decimal.Zero,
		MinimumStock:    decimal.Zero,
		CreatedAt:       f.CreatedAt,
	}
}
