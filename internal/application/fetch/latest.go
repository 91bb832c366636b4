// Package fetch coordina las cargas de datos de las páginas: solo la petición
// más reciente por clave puede publicar su resultado, y una carga que excede
// el presupuesto de render se reporta como pendiente.
package fetch

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrSuperseded una petición posterior con la misma clave reemplazó a esta.
	ErrSuperseded = errors.New("fetch: reemplazada por una petición más reciente")
	// ErrBudgetExceeded la carga no terminó dentro del presupuesto de render.
	ErrBudgetExceeded = errors.New("fetch: presupuesto de render excedido")
)

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Latest lleva un contador de generación por clave (sesión + recurso).
// Cada Run nuevo cancela el contexto del anterior todavía en curso.
type Latest struct {
	mu   sync.Mutex
	gen  uint64
	runs map[string]inflight
}

// NewLatest crea el coordinador.
func NewLatest() *Latest {
	return &Latest{runs: make(map[string]inflight)}
}

func (l *Latest) begin(ctx context.Context, key string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.runs[key]; ok {
		prev.cancel()
	}
	l.gen++
	l.runs[key] = inflight{gen: l.gen, cancel: cancel}
	return ctx, l.gen
}

// finish libera la clave y devuelve false si gen ya no es la generación vigente.
func (l *Latest) finish(key string, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.runs[key]
	if !ok || cur.gen != gen {
		return false
	}
	cur.cancel()
	delete(l.runs, key)
	return true
}

// InFlight cantidad de claves con una carga en curso.
func (l *Latest) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.runs)
}

// Run ejecuta fn bajo la clave. Si otra llamada con la misma clave empieza
// antes de que fn termine, el resultado de fn se descarta con ErrSuperseded.
func Run[T any](ctx context.Context, l *Latest, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	runCtx, gen := l.begin(ctx, key)
	v, err := fn(runCtx)
	if !l.finish(key, gen) {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}

// Within ejecuta fn con un presupuesto de tiempo. Si el presupuesto vence
// antes que fn, cancela fn y devuelve ErrBudgetExceeded. Un budget <= 0 no limita.
func Within[T any](ctx context.Context, budget time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if budget <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			var zero T
			return zero, ErrBudgetExceeded
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrBudgetExceeded
		}
		return zero, ctx.Err()
	}
}
