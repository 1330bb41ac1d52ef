package mcache

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	opGet        = "get"
	opSet        = "set"
	opInvalidate = "invalidate"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultOK    = "ok"
	resultError = "error"
)

type metrics struct {
	ops *prometheus.CounterVec
}

// newMetrics returns nil when reg is nil or registration fails, a nil
// *metrics records nothing.
func newMetrics(reg prometheus.Registerer, logger *zap.Logger) *metrics {
	if reg == nil {
		return nil
	}

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mcache",
		Name:      "operations_total",
		Help:      "Cache adapter operations by operation and result.",
	}, []string{"op", "result"})

	if err := reg.Register(ops); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			logger.Warn("register metrics", zap.Error(err))
			return nil
		}

		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			logger.Warn("register metrics: conflicting collector", zap.Error(err))
			return nil
		}
		ops = existing
	}

	return &metrics{ops: ops}
}

func (m *metrics) observe(op, result string) {
	if m == nil {
		return
	}

	m.ops.WithLabelValues(op, result).Inc()
}
