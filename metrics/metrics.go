// Package metrics exports collision World diagnostics to Prometheus.
package metrics

import (
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/milk9111/collide/collision"
)

const namespace = "collide"

// Collector publishes the most recent World snapshot. The frame loop calls
// Observe; scrapes read the snapshot so they never touch the World itself.
//
// World counters drop to zero on ResetStats or when a scene reload swaps the
// World. The Collector adds up the increase between observations instead, so
// the exported counters never go down.
type Collector struct {
	mu     sync.RWMutex
	world  *collision.World
	last   collision.Stats
	totals []uint64
	shapes int
	cells  int

	counters []counterDesc
	shapesG  *prometheus.Desc
	cellsG   *prometheus.Desc

	queryDuration prometheus.Histogram
}

type counterDesc struct {
	desc  *prometheus.Desc
	value func(collision.Stats) uint64
}

func newCounter(name, help string, value func(collision.Stats) uint64) counterDesc {
	return counterDesc{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "world", name), help, nil, nil),
		value: value,
	}
}

func NewCollector() *Collector {
	c := &Collector{
		counters: []counterDesc{
			newCounter("cells_created_total", "Grid cells allocated.", func(s collision.Stats) uint64 { return s.CellsCreated }),
			newCounter("cells_deleted_total", "Grid cells reclaimed after becoming empty.", func(s collision.Stats) uint64 { return s.CellsDeleted }),
			newCounter("shapes_added_total", "Shapes registered.", func(s collision.Stats) uint64 { return s.ShapesAdded }),
			newCounter("shapes_updated_total", "Deferred shape relocations applied.", func(s collision.Stats) uint64 { return s.ShapesUpdated }),
			newCounter("shapes_removed_total", "Shapes unregistered.", func(s collision.Stats) uint64 { return s.ShapesRemoved }),
			newCounter("broad_phase_calls_total", "Broad phase passes.", func(s collision.Stats) uint64 { return s.BroadPhaseCalls }),
			newCounter("candidates_total", "Distinct shapes met in visited cells.", func(s collision.Stats) uint64 { return s.Candidates }),
			newCounter("candidates_accepted_total", "Candidates passing mask and predicate.", func(s collision.Stats) uint64 { return s.CandidatesAccepted }),
			newCounter("narrow_phase_tests_total", "Narrow phase handler invocations.", func(s collision.Stats) uint64 { return s.NarrowPhaseTests }),
			newCounter("matches_total", "Confirmed collisions.", func(s collision.Stats) uint64 { return s.Matches }),
		},
		shapesG: prometheus.NewDesc(prometheus.BuildFQName(namespace, "world", "shapes"), "Registered shapes.", nil, nil),
		cellsG:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "world", "cells"), "Live grid cells.", nil, nil),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent in a collision query.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
	}
	c.totals = make([]uint64, len(c.counters))
	return c
}

// Observe snapshots w. It must run on the goroutine that owns w.
func (c *Collector) Observe(w *collision.World) {
	// CellCount flushes, which can bump ShapesUpdated and CellsDeleted.
	cells := w.CellCount()
	stats, shapes := w.Stats(), w.Len()

	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.last
	if w != c.world || stats.Resets != prev.Resets {
		prev = collision.Stats{}
	}
	for i, cd := range c.counters {
		c.totals[i] += cd.value(stats) - cd.value(prev)
	}
	c.world, c.last, c.shapes, c.cells = w, stats, shapes, cells
}

// ObserveQuery records how long one query took.
func (c *Collector) ObserveQuery(d time.Duration) {
	c.queryDuration.Observe(d.Seconds())
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, cd := range c.counters {
		ch <- cd.desc
	}
	ch <- c.shapesG
	ch <- c.cellsG
	c.queryDuration.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	totals := slices.Clone(c.totals)
	shapes, cells := c.shapes, c.cells
	c.mu.RUnlock()

	for i, cd := range c.counters {
		ch <- prometheus.MustNewConstMetric(cd.desc, prometheus.CounterValue, float64(totals[i]))
	}
	ch <- prometheus.MustNewConstMetric(c.shapesG, prometheus.GaugeValue, float64(shapes))
	ch <- prometheus.MustNewConstMetric(c.cellsG, prometheus.GaugeValue, float64(cells))
	c.queryDuration.Collect(ch)
}
