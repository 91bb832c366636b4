package usecase

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// PreferencesUseCase preferencias de accesibilidad del usuario.
type PreferencesUseCase struct {
	store repository.PreferenceStore
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(store repository.PreferenceStore) *PreferencesUseCase {
	return &PreferencesUseCase{store: store}
}

// Get devuelve las preferencias persistidas o los valores por defecto.
func (uc *PreferencesUseCase) Get(ctx context.Context, viewer *entity.SessionUser) (*dto.PreferencesDTO, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return nil, err
	}
	p, err := uc.store.Load(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	return toPreferencesDTO(p), nil
}

// Update reemplaza las preferencias. Un tamaño de fuente desconocido es ErrInvalidInput.
func (uc *PreferencesUseCase) Update(ctx context.Context, viewer *entity.SessionUser, in dto.PreferencesDTO) (*dto.PreferencesDTO, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return nil, err
	}
	if in.FontSize == "" {
		in.FontSize = entity.FontSizeMedium
	}
	if !entity.ValidFontSize(in.FontSize) {
		return nil, domain.ErrInvalidInput
	}
	p := entity.Preferences{
		FontSize:                  in.FontSize,
		HighContrast:              in.HighContrast,
		ReduceMotion:              in.ReduceMotion,
		EnhanceScreenReaderCompat: in.EnhanceScreenReaderCompat,
		FocusIndicatorsEnhanced:   in.FocusIndicatorsEnhanced,
	}
	if err := uc.store.Save(ctx, viewer.ID, p); err != nil {
		return nil, err
	}
	return toPreferencesDTO(p), nil
}

func toPreferencesDTO(p entity.Preferences) *dto.PreferencesDTO {
	return &dto.PreferencesDTO{
		FontSize:                  p.FontSize,
		HighContrast:              p.HighContrast,
		ReduceMotion:              p.ReduceMotion,
		EnhanceScreenReaderCompat: p.EnhanceScreenReaderCompat,
		FocusIndicatorsEnhanced:   p.FocusIndicatorsEnhanced,
	}
}
