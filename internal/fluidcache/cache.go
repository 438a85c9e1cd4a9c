/*
Copyright 2026 The propbudget Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fluidcache memoises fluid property lookups shared by concurrent runs.
package fluidcache

import (
	"context"
	"sync"

	"github.com/vehicle-design/propbudget/internal/fluids"
	"github.com/vehicle-design/propbudget/internal/logging"
)

// key identifies one thermodynamic state of one fluid.
type key struct {
	fluid       string
	temperature float64
	pressure    float64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// CachingOracle decorates an Oracle with an in-memory cache.
// Only successful lookups are stored; failures always reach the backend.
type CachingOracle struct {
	backend fluids.Oracle

	mu      sync.RWMutex
	entries map[key]float64
	hits    int
	misses  int
}

var _ fluids.Oracle = (*CachingOracle)(nil)

// New creates a CachingOracle in front of backend.
func New(backend fluids.Oracle) *CachingOracle {
	return &CachingOracle{
		backend: backend,
		entries: make(map[key]float64),
	}
}

// Density implements fluids.Oracle.
func (c *CachingOracle) Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error) {
	k := key{fluid: fluid, temperature: temperature, pressure: pressure}

	c.mu.RLock()
	rho, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		logging.FromContext(ctx).V(logging.TRACE).Info("density cache hit",
			"fluid", fluid, "temperature", temperature, "pressure", pressure)
		return rho, nil
	}

	rho, err := c.backend.Density(ctx, fluid, temperature, pressure)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	c.entries[k] = rho
	return rho, nil
}

// Stats returns a snapshot of the cache counters.
func (c *CachingOracle) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// Reset drops every cached entry and zeroes the counters.
func (c *CachingOracle) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[key]float64)
	c.hits = 0
	c.misses = 0
}
