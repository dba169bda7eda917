package stream

import (
	"errors"
	"sync"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound      = errors.New("SESSION_NOT_FOUND")
	ErrSessionExpired       = errors.New("SESSION_EXPIRED")
	ErrSessionOrderMismatch = errors.New("SESSION_ORDER_MISMATCH")
)

// Session is a one-time grant to subscribe to a single order's event
// stream. The transport cannot carry credentials, so the key travels as a
// query parameter and is only good for the order it was minted for.
type Session struct {
	Key       string
	UserID    string
	OrderCode string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionManager keeps the session table in memory. Expired entries are
// evicted lazily on validation and by a periodic sweep for memory hygiene;
// correctness never depends on the sweep.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	logger   *zap.Logger

	ticker *time.Ticker
	stopCh chan struct{}
}

func NewSessionManager(ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (sm *SessionManager) Create(userID, orderCode string) Session {
	now := time.Now()
	session := Session{
		Key:       uuid.NewString(),
		UserID:    userID,
		OrderCode: model.NormalizeOrderCode(orderCode),
		CreatedAt: now,
		ExpiresAt: now.Add(sm.ttl),
	}

	sm.mu.Lock()
	sm.sessions[session.Key] = session
	sm.mu.Unlock()

	return session
}

func (sm *SessionManager) Validate(key, orderCode string) (Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[key]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		delete(sm.sessions, key)
		return Session{}, ErrSessionExpired
	}

	if session.OrderCode != model.NormalizeOrderCode(orderCode) {
		return Session{}, ErrSessionOrderMismatch
	}

	return session, nil
}

func (sm *SessionManager) Count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// Start begins the periodic expired-session sweep.
func (sm *SessionManager) Start(interval time.Duration) {
	sm.ticker = time.NewTicker(interval)
	go sm.sweepLoop()
	sm.logger.Info("Session sweeper started", zap.Duration("interval", interval))
}

func (sm *SessionManager) Stop() {
	if sm.ticker != nil {
		sm.ticker.Stop()
	}
	close(sm.stopCh)
}

func (sm *SessionManager) sweepLoop() {
	for {
		select {
		case <-sm.ticker.C:
			sm.sweep()
		case <-sm.stopCh:
			return
		}
	}
}

func (sm *SessionManager) sweep() {
	now := time.Now()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	swept := 0
	for key, session := range sm.sessions {
		if now.After(session.ExpiresAt) {
			delete(sm.sessions, key)
			swept++
		}
	}

	if swept > 0 {
		sm.logger.Info("Swept expired stream sessions", zap.Int("count", swept))
	}
}
