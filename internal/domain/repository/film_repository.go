package repository

import "github.com/tu-usuario/tintpro-api/internal/domain/entity"

// FilmRepository define el puerto de persistencia para películas.
type FilmRepository interface {
	Create(film *entity.Film) error
	GetByID(id string) (*entity.Film, error)
	List(activeOnly bool) ([]*entity.Film, error)
}
