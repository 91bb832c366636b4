// Package notification despacha los avisos (toasts) de cada acción y expone
// el feed de notificaciones de cada usuario.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

const (
	pushTimeout = 2 * time.Second
	feedLimit   = 50
)

var _ ports.Notifier = (*Dispatcher)(nil)

// Dispatcher implementa Notifier sobre el NotificationStore.
// Los errores del almacén se registran y nunca se propagan al llamador.
type Dispatcher struct {
	store repository.NotificationStore
	log   *logger.Logger
	now   func() time.Time
}

// NewDispatcher construye el despachador.
func NewDispatcher(store repository.NotificationStore, log *logger.Logger) *Dispatcher {
	return &Dispatcher{store: store, log: log.Component("notifier"), now: time.Now}
}

// Notify registra el aviso en el feed del usuario.
func (d *Dispatcher) Notify(ctx context.Context, userID string, t ports.Toast) {
	if userID == "" {
		return
	}
	variant := t.Variant
	if variant == "" {
		variant = entity.NotificationDefault
	}
	// El aviso se registra aunque la petición que lo originó ya haya terminado.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()
	n := &entity.Notification{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       t.Title,
		Description: t.Description,
		Variant:     variant,
		CreatedAt:   d.now().UTC(),
	}
	if err := d.store.Push(ctx, n); err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Str("title", t.Title).Msg("no se pudo registrar la notificación")
	}
}

// UseCase lectura del feed de notificaciones.
type UseCase struct {
	store repository.NotificationStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.NotificationStore) *UseCase {
	return &UseCase{store: store}
}

// List devuelve las notificaciones del usuario, más recientes primero.
func (uc *UseCase) List(ctx context.Context, userID string) ([]dto.NotificationRow, error) {
	list, err := uc.store.List(ctx, userID, feedLimit)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.NotificationRow, 0, len(list))
	for _, n := range list {
		rows = append(rows, dto.NotificationRow{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Variant:     n.Variant,
			CreatedAt:   n.CreatedAt,
		})
	}
	return rows, nil
}
