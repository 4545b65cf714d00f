package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/entity"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// InstallerUseCase casos de uso CRUD para instaladores.
type InstallerUseCase struct {
	repo repository.InstallerRepository
}

// NewInstallerUseCase construye el caso de uso.
func NewInstallerUseCase(repo repository.InstallerRepository) *InstallerUseCase {
	return &InstallerUseCase{repo: repo}
}

// Create crea un instalador activo.
func (uc *InstallerUseCase) Create(in dto.CreateInstallerRequest) (*dto.InstallerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	installer := &entity.Installer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(installer); err != nil {
		return nil, err
	}
	return toInstallerResponse(installer), nil
}

// GetByID obtiene un instalador por ID.
func (uc *InstallerUseCase) GetByID(id string) (*dto.InstallerResponse, error) {
	installer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if installer == nil {
		return nil, nil
	}
	return toInstallerResponse(installer), nil
}

// List lista instaladores; activeOnly filtra los inactivos.
func (uc *InstallerUseCase) List(activeOnly bool) ([]dto.InstallerResponse, error) {
	list, err := uc.repo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InstallerResponse, 0, len(list))
	for _, i := range list {
		result = append(result, *toInstallerResponse(i))
	}
	return result, nil
}

func toInstallerResponse(i *entity.Installer) *dto.InstallerResponse {
	return &dto.InstallerResponse{
		ID:        i.ID,
		Name:      i.Name,
		IsActive:  i.IsActive,
		CreatedAt: i.CreatedAt,
	}
}
