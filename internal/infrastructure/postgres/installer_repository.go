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

var _ repository.InstallerRepository = (*InstallerRepo)(nil)

// InstallerRepo implementación de InstallerRepository sobre PostgreSQL (usable con pool o tx).
type InstallerRepo struct {
	q Querier
}

// NewInstallerRepository construye el adaptador de instaladores. Pasar pool o tx (Querier).
func NewInstallerRepository(q Querier) *InstallerRepo {
	return &InstallerRepo{q: q}
}

// Create persiste un nuevo instalador.
func (r *InstallerRepo) Create(installer *entity.Installer) error {
	query := `
		INSERT INTO installers (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		installer.ID, installer.Name, installer.IsActive, installer.CreatedAt, installer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert installer: %w", err)
	}
	return nil
}

// GetByID obtiene un instalador por ID.
func (r *InstallerRepo) GetByID(id string) (*entity.Installer, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM installers WHERE id = $1`
	var i entity.Installer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Name, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installer: %w", err)
	}
	return &i, nil
}

// List lista instaladores por nombre; activeOnly filtra los inactivos.
func (r *InstallerRepo) List(activeOnly bool) ([]*entity.Installer, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM installers
		WHERE NOT $1 OR is_active
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list installers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installer
	for rows.Next() {
		var i entity.Installer
		if err := rows.Scan(&i.ID, &i.Name, &i.IsActive, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan installer: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
