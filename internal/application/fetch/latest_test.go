package fetch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/fetch"
)

func TestRun_DevuelveResultado(t *testing.T) {
	l := fetch.NewLatest()
	v, err := fetch.Run(context.Background(), l, "s1:orders", func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Zero(t, l.InFlight())
}

func TestRun_PeticionPosteriorCancelaLaAnterior(t *testing.T) {
	l := fetch.NewLatest()
	started := make(chan struct{})
	var wg sync.WaitGroup
	var staleErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = fetch.Run(context.Background(), l, "s1:orders", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "stale", ctx.Err()
		})
	}()
	<-started

	v, err := fetch.Run(context.Background(), l, "s1:orders", func(context.Context) (string, error) {
		return "fresh", nil
	})
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.ErrorIs(t, staleErr, fetch.ErrSuperseded)
	assert.Zero(t, l.InFlight())
}

func TestRun_ClavesDistintasNoInterfieren(t *testing.T) {
	l := fetch.NewLatest()
	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	var otherErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, otherErr = fetch.Run(context.Background(), l, "s1:customers", func(ctx context.Context) (int, error) {
			close(started)
			select {
			case <-release:
				return 1, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		})
	}()
	<-started

	_, err := fetch.Run(context.Background(), l, "s2:customers", func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	close(release)
	wg.Wait()
	assert.NoError(t, otherErr)
}

func TestWithin_DentroDelPresupuesto(t *testing.T) {
	v, err := fetch.Within(context.Background(), time.Second, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestWithin_ExcedePresupuesto(t *testing.T) {
	_, err := fetch.Within(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	assert.ErrorIs(t, err, fetch.ErrBudgetExceeded)
}

func TestWithin_ErrorPropio(t *testing.T) {
	boom := errors.New("boom")
	_, err := fetch.Within(context.Background(), time.Second, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithin_SinPresupuesto(t *testing.T) {
	v, err := fetch.Within(context.Background(), 0, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
