package repository

import "github.com/tu-usuario/tintpro-api/internal/domain/entity"

// InstallerRepository define el puerto de persistencia para instaladores.
type InstallerRepository interface {
	Create(installer *entity.Installer) error
	GetByID(id string) (*entity.Installer, error)
	List(activeOnly bool) ([]*entity.Installer, error)
}
