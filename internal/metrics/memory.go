// Package metrics collects runtime measurements for a summation run:
// process memory statistics and term throughput.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta returns the change in counters between an earlier snapshot and this
// one. Gauge-like fields (HeapAlloc, HeapSys, Sys, HeapObjects) carry this
// snapshot's values since a difference of gauges is not meaningful.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemorySnapshot {
	d := s
	if s.NumGC >= before.NumGC {
		d.NumGC = s.NumGC - before.NumGC
	}
	if s.PauseTotalNs >= before.PauseTotalNs {
		d.PauseTotalNs = s.PauseTotalNs - before.PauseTotalNs
	}
	if s.TotalAlloc >= before.TotalAlloc {
		d.TotalAlloc = s.TotalAlloc - before.TotalAlloc
	}
	return d
}
