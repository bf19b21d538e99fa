package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the metrics gathered by g, or the default gatherer when g
// is nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
