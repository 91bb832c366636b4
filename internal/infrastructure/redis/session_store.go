package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

const sessionPrefix = "session:"

// SessionStore persiste el blob JSON de cada sesión con expiración nativa de Redis.
type SessionStore struct {
	rdb goredis.UniversalClient
	now func() time.Time
}

// NewSessionStore construye el almacén.
func NewSessionStore(rdb goredis.UniversalClient) *SessionStore {
	return &SessionStore{rdb: rdb, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: serializar sesión: %w", err)
	}
	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return s.Delete(ctx, sess.ID)
		}
	}
	if err := s.rdb.Set(ctx, sessionPrefix+sess.ID, blob, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar sesión: %w", err)
	}
	return nil
}

// Load devuelve (nil, nil) si la clave no existe y ErrSessionCorrupted si el JSON es inválido.
func (s *SessionStore) Load(ctx context.Context, id string) (*entity.Session, error) {
	blob, err := s.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer sesión: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(blob, &sess); err != nil || sess.ID == "" {
		return nil, domain.ErrSessionCorrupted
	}
	if sess.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis: eliminar sesión: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
