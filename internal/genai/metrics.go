package genai

import (
	"sort"
	"sync"
	"time"
)

// Operation labels for recorded samples.
const (
	OpArticle = "article"
	OpImage   = "image"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// OpSnapshot is a point-in-time latency aggregate for one operation.
type OpSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Metrics tracks recent generative-API latencies per operation within a
// rolling window.
type Metrics struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
}

func NewMetrics(maxAge time.Duration) *Metrics {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Metrics{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
	}
}

// Record adds one latency sample for the operation.
func (m *Metrics) Record(op string, d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked(op, now)
	m.samples[op] = append(m.samples[op], sample{
		timestamp:  now,
		durationMs: ms,
	})
}

// Snapshot aggregates the samples still inside the window, keyed by
// operation. Operations with no recent samples are omitted.
func (m *Metrics) Snapshot() map[string]OpSnapshot {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]OpSnapshot, len(m.samples))
	for op := range m.samples {
		m.pruneLocked(op, now)
		recent := m.samples[op]
		if len(recent) == 0 {
			continue
		}

		values := make([]int64, 0, len(recent))
		var sum int64
		for _, sm := range recent {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[op] = OpSnapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		}
	}
	return out
}

func (m *Metrics) pruneLocked(op string, now time.Time) {
	cutoff := now.Add(-m.maxAge)
	samples := m.samples[op]
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	m.samples[op] = samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
