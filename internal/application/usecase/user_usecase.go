package usecase

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios (solo administradores).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, viewer *entity.SessionUser) ([]dto.UserRow, error) {
	if err := allow(viewer, entity.RoleAdmin); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	rows := make([]dto.UserRow, 0, len(list))
	for _, u := range list {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		rows = append(rows, dto.UserRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      string(u.Role),
			Status:    status,
			CreatedAt: u.CreatedAt,
		})
	}
	return rows, nil
}

// SetActive activa o desactiva una cuenta. Un administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, viewer *entity.SessionUser, id string, active bool) (*dto.UserResponse, error) {
	if err := allow(viewer, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if id == viewer.ID && !active {
		return nil, domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = active
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
