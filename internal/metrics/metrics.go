package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// ResolutionMetrics counts resolution attempts by outcome and faults.
type ResolutionMetrics struct {
	resolutions *prometheus.CounterVec
	faults      prometheus.Counter
}

// NewResolutionMetrics creates and registers the resolution counters.
func NewResolutionMetrics(reg prometheus.Registerer) *ResolutionMetrics {
	m := &ResolutionMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bidround_resolutions_total",
			Help: "Resolution attempts by outcome kind.",
		}, []string{"outcome"}),
		faults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bidround_resolution_faults_total",
			Help: "Resolution attempts aborted by a fault.",
		}),
	}
	reg.MustRegister(m.resolutions, m.faults)
	return m
}

// RecordOutcome counts one finished resolution attempt.
func (m *ResolutionMetrics) RecordOutcome(kind bidroundtypes.OutcomeKind) {
	m.resolutions.WithLabelValues(string(kind)).Inc()
}

// RecordFault counts one aborted resolution attempt.
func (m *ResolutionMetrics) RecordFault() {
	m.faults.Inc()
}
