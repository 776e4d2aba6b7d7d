package repo

import "github.com/prometheus/client_golang/prometheus"

// Backend label values for storeOps.
const (
	backendSQL   = "sql"
	backendMongo = "mongo"
)

// storeOps counts document store calls by backend, operation, collection
// and outcome ("ok" or "error"). Collections are a fixed set so cardinality
// stays bounded.
var storeOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "newmum",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Document store calls, by backend, operation, collection and result.",
	},
	[]string{"backend", "op", "collection", "result"},
)

func init() {
	prometheus.MustRegister(storeOps)
}

func observe(backend, op, collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeOps.WithLabelValues(backend, op, collection, result).Inc()
}
