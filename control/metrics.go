// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collector exposing pool accounting per size class.

package control

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-pool/api"
)

// Collector exports one pool's stats under hioload_pool_* metric names
// with a constant pool label and a per-class class label. Register it
// with any prometheus.Registerer:
//
//	prometheus.MustRegister(control.NewCollector("frames", p))
type Collector struct {
	src api.StatsSource

	rents       *prometheus.Desc
	releases    *prometheus.Desc
	freshAllocs *prometheus.Desc
	localHits   *prometheus.Desc
	steals      *prometheus.Desc
	discards    *prometheus.Desc
	idle        *prometheus.Desc
	inUse       *prometheus.Desc
}

// NewCollector creates a collector for one pool. name becomes the
// constant "pool" label so several pools can share a registry.
func NewCollector(name string, src api.StatsSource) *Collector {
	constLabels := prometheus.Labels{"pool": name}
	desc := func(suffix, help string) *prometheus.Desc {
		return prometheus.NewDesc("hioload_pool_"+suffix, help, []string{"class"}, constLabels)
	}
	return &Collector{
		src:         src,
		rents:       desc("rents_total", "Buffers handed out."),
		releases:    desc("releases_total", "Buffers returned through handles."),
		freshAllocs: desc("fresh_allocations_total", "Buffers newly allocated."),
		localHits:   desc("local_hits_total", "Reuses from the calling thread's own stash."),
		steals:      desc("steals_total", "Reuses from another thread's stash."),
		discards:    desc("discards_total", "Buffers dropped while purging dead threads."),
		idle:        desc("idle_buffers", "Stashed buffers ready for reuse (approximate)."),
		inUse:       desc("in_use_buffers", "Outstanding borrow handles."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rents
	ch <- c.releases
	ch <- c.freshAllocs
	ch <- c.localHits
	ch <- c.steals
	ch <- c.discards
	ch <- c.idle
	ch <- c.inUse
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()
	for size, cs := range st.Classes {
		class := strconv.Itoa(size)
		counter := func(d *prometheus.Desc, v int64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), class)
		}
		gauge := func(d *prometheus.Desc, v int64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), class)
		}
		counter(c.rents, cs.Rents)
		counter(c.releases, cs.Releases)
		counter(c.freshAllocs, cs.FreshAllocs)
		counter(c.localHits, cs.LocalHits)
		counter(c.steals, cs.Steals)
		counter(c.discards, cs.Discards)
		gauge(c.idle, cs.Idle)
		gauge(c.inUse, cs.InUse)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
