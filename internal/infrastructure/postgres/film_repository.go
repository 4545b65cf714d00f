package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

var _ repository.FilmRepository = (*FilmRepo)(nil)

// FilmRepo implementación de FilmRepository sobre PostgreSQL (usable con pool o tx).
type FilmRepo struct {
	q Querier
}

// NewFilmRepository construye el adaptador de películas. Pasar pool o tx (Querier).
func NewFilmRepository(q Querier) *FilmRepo {
	return &FilmRepo{q: q}
}

// Create persiste una nueva película.
func (r *FilmRepo) Create(film *entity.Film) error {
	query := `
		INSERT INTO films (id, name, type, cost_per_sqft, is_active, weight_per_sqft, roll_width_inches, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		film.ID, film.Name, film.Type, film.CostPerSqFt, film.IsActive,
		film.WeightPerSqFt, film.RollWidthInches, film.CreatedAt, film.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert film: %w", err)
	}
	return nil
}

// GetByID obtiene una película por ID.
func (r *FilmRepo) GetByID(id string) (*entity.Film, error) {
	query := `
		SELECT id, name, type, cost_per_sqft, is_active, weight_per_sqft, roll_width_inches, created_at, updated_at
		FROM films WHERE id = $1`
	var f entity.Film
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Name, &f.Type, &f.CostPerSqFt, &f.IsActive,
		&f.WeightPerSqFt, &f.RollWidthInches, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get film: %w", err)
	}
	return &f, nil
}

// List lista películas por nombre; activeOnly filtra las inactivas.
func (r *FilmRepo) List(activeOnly bool) ([]*entity.Film, error) {
	query := `
		SELECT id, name, type, cost_per_sqft, is_active, weight_per_sqft, roll_width_inches, created_at, updated_at
		FROM films
		WHERE NOT $1 OR is_active
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()
	var list []*entity.Film
	for rows.Next() {
		var f entity.Film
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.CostPerSqFt, &f.IsActive,
			&f.WeightPerSqFt, &f.RollWidthInches, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
