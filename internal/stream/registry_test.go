package stream_test

import (
	"testing"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func paidEvent(orderCode string) stream.Event {
	return stream.Event{
		Event:     stream.EventPaymentUpdate,
		OrderCode: orderCode,
		Status:    "paid",
	}
}

func TestRegistry_Emit(t *testing.T) {
	t.Run("delivers to every subscriber of the order", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch1 := r.Register("ORD250001")
		ch2 := r.Register("ORD250001")

		result := r.Emit("ORD250001", paidEvent("ORD250001"))

		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 2, result.Delivered)
		assert.NotEmpty(t, <-ch1)
		assert.NotEmpty(t, <-ch2)
	})

	t.Run("order without subscribers delivers to nobody", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch := r.Register("ORD250002")

		result := r.Emit("ORD250001", paidEvent("ORD250001"))

		assert.Equal(t, 0, result.Total)
		assert.Equal(t, 0, result.Delivered)
		assert.Empty(t, len(ch))
	})

	t.Run("normalizes the order code on both sides", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch := r.Register("DH ORD250001")

		result := r.Emit("ord250001", paidEvent("ORD250001"))

		assert.Equal(t, 1, result.Delivered)
		assert.NotEmpty(t, <-ch)
	})

	t.Run("stalled subscriber is evicted without blocking siblings", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		stalled := r.Register("ORD250001")
		healthy := r.Register("ORD250001")

		// Fill the stalled subscriber's buffer so the next send fails.
		for len(stalled) < cap(stalled) {
			r.Emit("ORD250001", paidEvent("ORD250001"))
			for len(healthy) > 0 {
				<-healthy
			}
		}

		result := r.Emit("ORD250001", paidEvent("ORD250001"))

		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Delivered)
		assert.NotEmpty(t, <-healthy)

		// The stalled channel was closed and removed; only the healthy one remains.
		assert.Equal(t, map[string]int{"ORD250001": 1}, r.Snapshot())
	})
}

func TestRegistry_Unregister(t *testing.T) {
	t.Run("last unregister removes the order entry", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch1 := r.Register("ORD250001")
		ch2 := r.Register("ORD250001")

		r.Unregister("ORD250001", ch1)
		assert.Equal(t, map[string]int{"ORD250001": 1}, r.Snapshot())

		r.Unregister("ORD250001", ch2)
		assert.Empty(t, r.Snapshot())
	})

	t.Run("unregister closes the channel", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch := r.Register("ORD250001")
		r.Unregister("ORD250001", ch)

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("unregister of unknown channel is a no-op", func(t *testing.T) {
		r := stream.NewRegistry(zap.NewNop())

		ch := r.Register("ORD250001")
		r.Unregister("ORD250001", ch)
		r.Unregister("ORD250001", ch)
		r.Unregister("ORD250099", ch)
	})
}
