// Package redis implementa los almacenes de sesión, preferencias y
// notificaciones sobre Redis.
//
// Claves:
//
//	session:<id>        string con el JSON de la sesión (TTL = vencimiento de la sesión)
//	prefs:<user>        hash, un campo por preferencia con valores string
//	notifications:<user> lista, más reciente primero, recortada a maxNotifications
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/palletpro-api/pkg/config"
)

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
