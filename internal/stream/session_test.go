package stream_test

import (
	"testing"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSessionManager_Validate(t *testing.T) {
	t.Run("valid session for its own order", func(t *testing.T) {
		sm := stream.NewSessionManager(30*time.Minute, zap.NewNop())

		created := sm.Create("user-1", "DH ORD250001")
		assert.Equal(t, "ORD250001", created.OrderCode)

		session, err := sm.Validate(created.Key, "ORD250001")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
	})

	t.Run("session for order A rejected against order B", func(t *testing.T) {
		sm := stream.NewSessionManager(30*time.Minute, zap.NewNop())

		created := sm.Create("user-1", "ORD250001")

		_, err := sm.Validate(created.Key, "ORD250002")

		assert.ErrorIs(t, err, stream.ErrSessionOrderMismatch)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		sm := stream.NewSessionManager(30*time.Minute, zap.NewNop())

		_, err := sm.Validate("no-such-key", "ORD250001")

		assert.ErrorIs(t, err, stream.ErrSessionNotFound)
	})

	t.Run("expired session rejected and evicted", func(t *testing.T) {
		sm := stream.NewSessionManager(-time.Minute, zap.NewNop())

		created := sm.Create("user-1", "ORD250001")
		assert.Equal(t, 1, sm.Count())

		_, err := sm.Validate(created.Key, "ORD250001")

		assert.ErrorIs(t, err, stream.ErrSessionExpired)
		assert.Equal(t, 0, sm.Count())

		_, err = sm.Validate(created.Key, "ORD250001")
		assert.ErrorIs(t, err, stream.ErrSessionNotFound)
	})

	t.Run("session keys are unique", func(t *testing.T) {
		sm := stream.NewSessionManager(30*time.Minute, zap.NewNop())

		a := sm.Create("user-1", "ORD250001")
		b := sm.Create("user-1", "ORD250001")

		assert.NotEqual(t, a.Key, b.Key)
		assert.Equal(t, 2, sm.Count())
	})
}

func TestSessionManager_Sweep(t *testing.T) {
	sm := stream.NewSessionManager(-time.Minute, zap.NewNop())

	sm.Create("user-1", "ORD250001")
	sm.Create("user-2", "ORD250002")
	assert.Equal(t, 2, sm.Count())

	sm.Start(10 * time.Millisecond)
	defer sm.Stop()

	assert.Eventually(t, func() bool {
		return sm.Count() == 0
	}, time.Second, 10*time.Millisecond)
}
