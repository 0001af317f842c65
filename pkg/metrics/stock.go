package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	StockOpCreate = "create"
	StockOpUpdate = "update"
	StockOpDelete = "delete"

	OutcomeApplied      = "applied"
	OutcomeInsufficient = "insufficient"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// StockMetrics counts inventory movements driven by sales.
type StockMetrics struct {
	adjustments  *prometheus.CounterVec
	insufficient prometheus.Counter
}

// NewStockMetrics registers the stock metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Sale-driven stock adjustments by operation and outcome.",
	}, []string{"operation", "outcome"})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insufficient_stock_total",
		Help: "Sale requests rejected for lack of stock.",
	})
	reg.MustRegister(adjustments, insufficient)
	return &StockMetrics{adjustments: adjustments, insufficient: insufficient}
}

// Record counts one adjustment attempt.
func (m *StockMetrics) Record(operation, outcome string) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
	if outcome == OutcomeInsufficient {
		m.insufficient.Inc()
	}
}
