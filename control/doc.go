// Package control
// Author: momentics <momentics@gmail.com>
//
// Observability plane for hioload-pool: debug probes, a Prometheus
// collector over pool accounting and a periodic stats monitor.
// The pool packages never log or export metrics themselves; everything
// here attaches from the outside through api.StatsSource.
package control
