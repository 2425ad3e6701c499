// File: control/monitor.go
// Author: momentics <momentics@gmail.com>
//
// Periodic pool stats logger for long-running workloads.

package control

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-pool/api"
)

// Monitor logs a pool stats snapshot at a fixed interval until stopped.
type Monitor struct {
	log      *zap.Logger
	src      api.StatsSource
	name     string
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewMonitor creates a monitor for one pool. A nil logger disables
// output without changing the caller's control flow.
func NewMonitor(log *zap.Logger, name string, src api.StatsSource, interval time.Duration) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		log:      log,
		src:      src,
		name:     name,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the logging loop in its own goroutine.
func (m *Monitor) Start() {
	go m.run()
}

// Stop terminates the loop and waits for it to finish. A final snapshot
// is logged on the way out.
func (m *Monitor) Stop() {
	close(m.stop)
	<-m.done
}

func (m *Monitor) run() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.logSnapshot()
		case <-m.stop:
			m.logSnapshot()
			return
		}
	}
}

func (m *Monitor) logSnapshot() {
	st := m.src.Stats()
	m.log.Info("pool stats",
		zap.String("pool", m.name),
		zap.Int("classes", len(st.Classes)),
		zap.Int64("rents", st.Totals.Rents),
		zap.Int64("fresh_allocs", st.Totals.FreshAllocs),
		zap.Int64("local_hits", st.Totals.LocalHits),
		zap.Int64("steals", st.Totals.Steals),
		zap.Int64("discards", st.Totals.Discards),
		zap.Int64("idle", st.Totals.Idle),
		zap.Int64("in_use", st.Totals.InUse),
	)
}
