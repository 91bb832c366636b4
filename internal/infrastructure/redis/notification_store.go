package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.NotificationStore = (*NotificationStore)(nil)

const (
	notificationsPrefix = "notifications:"
	maxNotifications    = 50
)

// NotificationStore feed por usuario sobre una lista de Redis.
type NotificationStore struct {
	rdb goredis.UniversalClient
}

// NewNotificationStore construye el almacén.
func NewNotificationStore(rdb goredis.UniversalClient) *NotificationStore {
	return &NotificationStore{rdb: rdb}
}

// Push agrega al inicio y recorta el feed en una sola transacción.
func (n *NotificationStore) Push(ctx context.Context, note *entity.Notification) error {
	blob, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("redis: serializar notificación: %w", err)
	}
	key := notificationsPrefix + note.UserID
	_, err = n.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.LPush(ctx, key, blob)
		pipe.LTrim(ctx, key, 0, maxNotifications-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar notificación: %w", err)
	}
	return nil
}

// List devuelve hasta limit notificaciones; las entradas ilegibles se omiten.
func (n *NotificationStore) List(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	blobs, err := n.rdb.LRange(ctx, notificationsPrefix+userID, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: leer notificaciones: %w", err)
	}
	out := make([]*entity.Notification, 0, len(blobs))
	for _, b := range blobs {
		var note entity.Notification
		if err := json.Unmarshal([]byte(b), &note); err != nil {
			continue
		}
		out = append(out, &note)
	}
	return out, nil
}
