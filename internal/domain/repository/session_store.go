package repository

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// SessionStore persiste el blob de sesión. Load devuelve (nil, nil) si no existe
// y domain.ErrSessionCorrupted si el blob no se puede decodificar.
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	Load(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// PreferenceStore persiste las preferencias de accesibilidad (una clave por preferencia).
type PreferenceStore interface {
	Load(ctx context.Context, userID string) (entity.Preferences, error)
	Save(ctx context.Context, userID string, prefs entity.Preferences) error
}

// NotificationStore feed de notificaciones por usuario, más recientes primero.
type NotificationStore interface {
	Push(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
}
