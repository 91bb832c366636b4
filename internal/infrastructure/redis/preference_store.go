package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.PreferenceStore = (*PreferenceStore)(nil)

const prefsPrefix = "prefs:"

// PreferenceStore guarda cada preferencia como un campo del hash del usuario.
type PreferenceStore struct {
	rdb goredis.UniversalClient
}

// NewPreferenceStore construye el almacén.
func NewPreferenceStore(rdb goredis.UniversalClient) *PreferenceStore {
	return &PreferenceStore{rdb: rdb}
}

// Load lee el hash; campos ausentes o inválidos toman el valor por defecto.
func (p *PreferenceStore) Load(ctx context.Context, userID string) (entity.Preferences, error) {
	raw, err := p.rdb.HGetAll(ctx, prefsPrefix+userID).Result()
	if err != nil {
		return entity.DefaultPreferences(), fmt.Errorf("redis: leer preferencias: %w", err)
	}
	return entity.DecodePreferences(raw), nil
}

func (p *PreferenceStore) Save(ctx context.Context, userID string, prefs entity.Preferences) error {
	fields := prefs.Encode()
	values := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		values = append(values, k, v)
	}
	if err := p.rdb.HSet(ctx, prefsPrefix+userID, values...).Err(); err != nil {
		return fmt.Errorf("redis: guardar preferencias: %w", err)
	}
	return nil
}
