// Package cache caché LRU con expiración para las métricas del dashboard.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/palletpro-api/internal/application/analytics"
	"github.com/jhoicas/palletpro-api/internal/application/usecase"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

var (
	_ analytics.MetricsCache     = (*MetricsCache)(nil)
	_ usecase.MetricsInvalidator = (*MetricsCache)(nil)
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palletpro_metrics_cache_hits_total",
		Help: "Aciertos en la caché de métricas del dashboard.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palletpro_metrics_cache_misses_total",
		Help: "Fallos en la caché de métricas del dashboard.",
	})
)

// MetricsCache guarda SalesMetrics por alcance ("all", "sales:<id>").
type MetricsCache struct {
	lru *expirable.LRU[string, *entity.SalesMetrics]
}

// NewMetricsCache crea la caché; size <= 0 usa 128 entradas.
func NewMetricsCache(size int, ttl time.Duration) *MetricsCache {
	if size <= 0 {
		size = 128
	}
	return &MetricsCache{lru: expirable.NewLRU[string, *entity.SalesMetrics](size, nil, ttl)}
}

func (c *MetricsCache) Get(key string) (*entity.SalesMetrics, bool) {
	m, ok := c.lru.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return m, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

func (c *MetricsCache) Add(key string, m *entity.SalesMetrics) {
	c.lru.Add(key, m)
}

// Purge vacía la caché. Los casos de uso de pedidos la llaman tras cada escritura.
func (c *MetricsCache) Purge() {
	c.lru.Purge()
}
