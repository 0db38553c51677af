package metrics

import (
	"sort"
	"time"
)

// Summary provides a summary of metrics for a filter.
type Summary struct {
	Count          int           `json:"count"`
	TotalTokens    int           `json:"total_tokens"`
	TotalTime      time.Duration `json:"total_time"`
	SuccessCount   int           `json:"success_count"`
	DegradedCount  int           `json:"degraded_count"`
	AvgTokens      float64       `json:"avg_tokens"`
	AvgTimeSeconds float64       `json:"avg_time_seconds"`
	AvgAttempts    float64       `json:"avg_attempts"`
}

// GetSummary returns a summary of metrics matching the filter.
func (r *Recorder) GetSummary(f Filter) Summary {
	return summarize(r.List(f, 0))
}

func summarize(metrics []Metric) Summary {
	s := Summary{Count: len(metrics)}
	var attempts int
	for _, m := range metrics {
		s.TotalTokens += m.TotalTokens
		s.TotalTime += time.Duration(m.LatencySeconds * float64(time.Second))
		attempts += m.Attempts
		if m.Success {
			s.SuccessCount++
		} else {
			s.DegradedCount++
		}
	}
	if s.Count > 0 {
		s.AvgTokens = float64(s.TotalTokens) / float64(s.Count)
		s.AvgTimeSeconds = s.TotalTime.Seconds() / float64(s.Count)
		s.AvgAttempts = float64(attempts) / float64(s.Count)
	}
	return s
}

// Percentiles returns p50/p95/p99 latency in seconds for matching metrics.
// All values are 0 when nothing matches.
func (r *Recorder) Percentiles(f Filter) (p50, p95, p99 float64) {
	metrics := r.List(f, 0)
	if len(metrics) == 0 {
		return 0, 0, 0
	}
	latencies := make([]float64, len(metrics))
	for i, m := range metrics {
		latencies[i] = m.LatencySeconds
	}
	sort.Float64s(latencies)
	return percentile(latencies, 50), percentile(latencies, 95), percentile(latencies, 99)
}

// percentile uses nearest-rank on sorted values.
func percentile(sorted []float64, p int) float64 {
	idx := (p*len(sorted) + 99) / 100
	if idx < 1 {
		idx = 1
	}
	if idx > len(sorted) {
		idx = len(sorted)
	}
	return sorted[idx-1]
}
