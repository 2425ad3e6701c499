// File: control/control_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/pool"
)

func newPool(t *testing.T) *pool.ArrayPool[int] {
	t.Helper()
	p, err := pool.New[int](5) // classes {8,16}
	require.NoError(t, err)
	return p
}

func TestProbesDumpState(t *testing.T) {
	p := newPool(t)
	s, err := p.Rent(8)
	require.NoError(t, err)
	defer s.Release()

	probes := control.NewProbes()
	probes.RegisterProbe("arraypool", control.PoolProbe(p))

	state := probes.DumpState()
	require.Contains(t, state, "arraypool")
	st, ok := state["arraypool"].(api.PoolStats)
	require.True(t, ok)
	require.Equal(t, int64(1), st.Totals.InUse)
}

func TestCollectorExportsAllClasses(t *testing.T) {
	p := newPool(t)
	s, err := p.Rent(9)
	require.NoError(t, err)
	s.Release()

	col := control.NewCollector("test", p)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(col))

	// 8 series per class, 2 classes.
	require.Equal(t, 16, testutil.CollectAndCount(col))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["hioload_pool_rents_total"])
	require.True(t, names["hioload_pool_idle_buffers"])
}

func TestMonitorLogsSnapshots(t *testing.T) {
	p := newPool(t)
	core, logs := observer.New(zapcore.InfoLevel)
	m := control.NewMonitor(zap.New(core), "test", p, 50*time.Millisecond)
	m.Start()
	m.Stop() // logs a final snapshot on shutdown
	require.GreaterOrEqual(t, logs.FilterMessage("pool stats").Len(), 1)
}
