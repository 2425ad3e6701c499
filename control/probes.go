// File: control/probes.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"sync"

	"github.com/momentics/hioload-pool/api"
)

// Probes holds registered probe functions.
type Probes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewProbes creates a probe registry.
func NewProbes() *Probes {
	return &Probes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (p *Probes) RegisterProbe(name string, fn func() any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probes[name] = fn
}

// DumpState returns output of all probes.
func (p *Probes) DumpState() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range p.probes {
		out[k] = fn()
	}
	return out
}

// PoolProbe adapts a pool's stats snapshot into a probe function.
func PoolProbe(src api.StatsSource) func() any {
	return func() any { return src.Stats() }
}

var _ api.Debug = (*Probes)(nil)
