package usecase

import (
	"slices"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// allow valida que haya sesión y que su rol esté entre roles.
func allow(viewer *entity.SessionUser, roles ...entity.Role) error {
	if viewer == nil {
		return domain.ErrUnauthorized
	}
	if !slices.Contains(roles, viewer.Role) {
		return domain.ErrForbidden
	}
	return nil
}
