package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

type failingStore struct{ pushes int }

func (f *failingStore) Push(context.Context, *entity.Notification) error {
	f.pushes++
	return errors.New("redis caído")
}

func (f *failingStore) List(context.Context, string, int) ([]*entity.Notification, error) {
	return nil, errors.New("redis caído")
}

func TestNotify_RegistraEnFeedMasRecientePrimero(t *testing.T) {
	store := memory.NewNotificationStore()
	d := notification.NewDispatcher(store, logger.Nop())
	uc := notification.NewUseCase(store)

	d.Notify(context.Background(), "u1", ports.Toast{Title: "Login successful", Description: "Welcome back, Jane Sales!", Variant: entity.NotificationSuccess})
	d.Notify(context.Background(), "u1", ports.Toast{Title: "Logged out"})
	d.Notify(context.Background(), "u2", ports.Toast{Title: "Otro usuario"})

	rows, err := uc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Logged out", rows[0].Title)
	assert.Equal(t, entity.NotificationDefault, rows[0].Variant, "variante por defecto")
	assert.Equal(t, entity.NotificationSuccess, rows[1].Variant)
}

func TestNotify_ContextoCanceladoIgualRegistra(t *testing.T) {
	store := memory.NewNotificationStore()
	d := notification.NewDispatcher(store, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Notify(ctx, "u1", ports.Toast{Title: "Profile updated"})

	rows, err := notification.NewUseCase(store).List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestNotify_ErrorDelAlmacenNoSePropaga(t *testing.T) {
	store := &failingStore{}
	d := notification.NewDispatcher(store, logger.Nop())
	assert.NotPanics(t, func() {
		d.Notify(context.Background(), "u1", ports.Toast{Title: "x"})
	})
	assert.Equal(t, 1, store.pushes)
}

func TestNotify_SinUsuarioNoHaceNada(t *testing.T) {
	store := &failingStore{}
	notification.NewDispatcher(store, logger.Nop()).Notify(context.Background(), "", ports.Toast{Title: "x"})
	assert.Zero(t, store.pushes)
}
