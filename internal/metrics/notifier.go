package metrics

import (
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
)

// InstrumentedNotifier counts broadcasts on their way to the registry.
type InstrumentedNotifier struct {
	registry *stream.Registry
	metrics  *Metrics
}

func NewInstrumentedNotifier(registry *stream.Registry, metrics *Metrics) *InstrumentedNotifier {
	return &InstrumentedNotifier{registry: registry, metrics: metrics}
}

func (n *InstrumentedNotifier) Emit(orderCode string, event stream.Event) stream.EmitResult {
	result := n.registry.Emit(orderCode, event)
	n.metrics.RecordBroadcast(result.Delivered)
	return result
}
