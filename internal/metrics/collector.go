package metrics

import (
	"runtime"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SystemCollector samples process, DB pool and session-table gauges on a
// fixed interval.
type SystemCollector struct {
	metrics   *Metrics
	db        *gorm.DB
	sessions  *stream.SessionManager
	logger    *zap.Logger
	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
}

func NewSystemCollector(metrics *Metrics, db *gorm.DB, sessions *stream.SessionManager,
	logger *zap.Logger) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		db:        db,
		sessions:  sessions,
		logger:    logger,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}
}

func (sc *SystemCollector) Start(interval time.Duration) {
	sc.ticker = time.NewTicker(interval)
	go sc.collectLoop()
	sc.logger.Info("System metrics collector started", zap.Duration("interval", interval))
}

func (sc *SystemCollector) Stop() {
	if sc.ticker != nil {
		sc.ticker.Stop()
	}
	close(sc.stopCh)
	sc.logger.Info("System metrics collector stopped")
}

func (sc *SystemCollector) collectLoop() {
	sc.collect()

	for {
		select {
		case <-sc.ticker.C:
			sc.collect()
		case <-sc.stopCh:
			return
		}
	}
}

func (sc *SystemCollector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sc.metrics.UpdateSystemMetrics(time.Since(sc.startTime), &memStats)
	sc.metrics.SetActiveSessions(sc.sessions.Count())

	if sc.db != nil {
		if sqlDB, err := sc.db.DB(); err == nil {
			stats := sqlDB.Stats()
			sc.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
			sc.metrics.DBConnectionsIdle.Set(float64(stats.Idle))
		}
	}
}
