package usercontext

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anyproto/any-share/followrequest"
)

type metrics struct {
	followRequests *prometheus.CounterVec
	decoded        *prometheus.CounterVec
	orphans        prometheus.Counter
	rejections     *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		followRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anyshare",
			Subsystem: "usercontext",
			Name:      "follow_requests_total",
			Help:      "Outgoing follow requests by final state",
		}, []string{"state", "reached"}),
		decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anyshare",
			Subsystem: "usercontext",
			Name:      "follow_requests_decoded_total",
			Help:      "Incoming follow requests by decode result",
		}, []string{"result"}),
		orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anyshare",
			Subsystem: "usercontext",
			Name:      "orphan_sharing_keys_total",
			Help:      "Authorized sharing keys found without a directory entry",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anyshare",
			Subsystem: "usercontext",
			Name:      "remote_rejections_total",
			Help:      "Mutations rejected by the core node",
		}, []string{"method"}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.followRequests, m.decoded, m.orphans, m.rejections} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) followRequest(res *followrequest.Result) {
	m.followRequests.WithLabelValues(res.State.String(), res.Reached.String()).Inc()
}

func (m *metrics) decodeResult(err error) {
	var result string
	switch {
	case err == nil:
		result = "ok"
	case errors.Is(err, followrequest.ErrRequestUndecryptable):
		result = "undecryptable"
	default:
		result = "malformed"
	}
	m.decoded.WithLabelValues(result).Inc()
}
