// Package session gestiona el ciclo de vida de la sesión autenticada:
// inicialización del almacén, inicio, resolución, refresco y cierre.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// Service es la fuente única de la identidad actual. Hasta que Init termina,
// Ready devuelve false y el router responde con el estado de carga.
type Service struct {
	store repository.SessionStore
	ttl   time.Duration
	log   *logger.Logger
	ready atomic.Bool
	now   func() time.Time
}

// NewService construye el servicio. No toca el almacén hasta Init.
func NewService(store repository.SessionStore, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{store: store, ttl: ttl, log: log.Component("session"), now: time.Now}
}

// Init verifica el almacén y marca el servicio como listo.
func (s *Service) Init(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("session: ping store: %w", err)
	}
	s.ready.Store(true)
	s.log.Info().Msg("almacén de sesiones listo")
	return nil
}

// Ready informa si la identidad ya puede resolverse.
func (s *Service) Ready() bool { return s.ready.Load() }

// Close marca el servicio como no disponible.
func (s *Service) Close() { s.ready.Store(false) }

// Start crea y persiste una sesión para el usuario.
func (s *Service) Start(ctx context.Context, user *entity.User) (*entity.Session, error) {
	if !s.Ready() {
		return nil, domain.ErrNotReady
	}
	now := s.now().UTC()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		User:      user.Snapshot(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session: save: %w", err)
	}
	return sess, nil
}

// Resolve devuelve la sesión vigente o (nil, nil) si no hay ninguna.
// Un blob corrupto se elimina y se trata como ausencia de sesión.
func (s *Service) Resolve(ctx context.Context, id string) (*entity.Session, error) {
	if !s.Ready() {
		return nil, domain.ErrNotReady
	}
	if id == "" {
		return nil, nil
	}
	sess, err := s.store.Load(ctx, id)
	if errors.Is(err, domain.ErrSessionCorrupted) {
		s.log.Warn().Str("session_id", id).Msg("blob de sesión corrupto, se elimina")
		if delErr := s.store.Delete(ctx, id); delErr != nil {
			s.log.Error().Err(delErr).Str("session_id", id).Msg("no se pudo eliminar la sesión corrupta")
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		_ = s.store.Delete(ctx, id)
		return nil, nil
	}
	return sess, nil
}

// Refresh actualiza la instantánea del usuario (cambios de perfil). El rol no puede cambiar.
func (s *Service) Refresh(ctx context.Context, id string, user *entity.User) (*entity.Session, error) {
	sess, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}
	if sess.User.ID != user.ID {
		return nil, domain.ErrForbidden
	}
	if sess.User.Role != user.Role {
		return nil, domain.ErrRoleImmutable
	}
	sess.User = user.Snapshot()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session: save: %w", err)
	}
	return sess, nil
}

// End elimina la sesión. Cerrar una sesión inexistente no es error.
func (s *Service) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
