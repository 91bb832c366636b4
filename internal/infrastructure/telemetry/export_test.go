package telemetry

import "github.com/prometheus/client_golang/prometheus"

func TableAdvisories(component string) prometheus.Counter {
	return tableAdvisoriesTotal.WithLabelValues(component)
}
