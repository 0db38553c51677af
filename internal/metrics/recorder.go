package metrics

import (
	"sync"
	"time"

	"github.com/jackzampolin/sommelier/internal/providers"
)

// DefaultCapacity is how many metrics a Recorder keeps before dropping the oldest.
const DefaultCapacity = 10000

// Recorder keeps the most recent metrics in memory.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.RWMutex
	metrics  []Metric
	capacity int
	dropped  int
}

// NewRecorder creates a recorder holding at most capacity metrics.
// capacity <= 0 uses DefaultCapacity.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{capacity: capacity}
}

// RecordOpts provides context for a metric recording.
type RecordOpts struct {
	SessionID string
	Persona   string
	Operation string
}

// Record stores a single metric.
func (r *Recorder) Record(m Metric) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.metrics) >= r.capacity {
		n := len(r.metrics) - r.capacity + 1
		r.metrics = append(r.metrics[:0], r.metrics[n:]...)
		r.dropped += n
	}
	r.metrics = append(r.metrics, m)
}

// RecordReply records metrics from a chat reply. A nil reply is ignored.
func (r *Recorder) RecordReply(opts RecordOpts, reply *providers.Reply) {
	if r == nil || reply == nil {
		return
	}
	r.Record(FromReply(reply, opts))
}

// Len returns the number of metrics held.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}

// Dropped returns how many metrics were evicted to stay within capacity.
func (r *Recorder) Dropped() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropped
}
