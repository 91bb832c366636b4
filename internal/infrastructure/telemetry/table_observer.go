// Package telemetry adaptadores de observabilidad para los componentes de dominio.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/palletpro-api/internal/domain/table"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

var _ table.Observer = (*TableObserver)(nil)

var tableAdvisoriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "palletpro_table_advisories_total",
		Help: "Avisos de rendimiento emitidos por las tablas de datos.",
	},
	[]string{"component"},
)

// TableObserver registra los avisos de la tabla como warning y en un contador.
type TableObserver struct {
	log *logger.Logger
}

// NewTableObserver construye el observador.
func NewTableObserver(log *logger.Logger) *TableObserver {
	if log == nil {
		log = logger.Nop()
	}
	return &TableObserver{log: log.Component("table")}
}

func (o *TableObserver) ReportPerformanceIssue(component, issue string) {
	tableAdvisoriesTotal.WithLabelValues(component).Inc()
	o.log.Warn().Str("source", component).Msg(issue)
}
