package metrics

import "time"

// Filter specifies query filters. Zero fields match everything.
type Filter struct {
	SessionID string
	Persona   string
	Operation string
	Backend   string
	Model     string
	After     time.Time
	Before    time.Time
	Success   *bool // nil = any, true = success only, false = errors only
}

func (f Filter) matches(m Metric) bool {
	if f.SessionID != "" && m.SessionID != f.SessionID {
		return false
	}
	if f.Persona != "" && m.Persona != f.Persona {
		return false
	}
	if f.Operation != "" && m.Operation != f.Operation {
		return false
	}
	if f.Backend != "" && m.Backend != f.Backend {
		return false
	}
	if f.Model != "" && m.Model != f.Model {
		return false
	}
	if !f.After.IsZero() && !m.CreatedAt.After(f.After) {
		return false
	}
	if !f.Before.IsZero() && !m.CreatedAt.Before(f.Before) {
		return false
	}
	if f.Success != nil && m.Success != *f.Success {
		return false
	}
	return true
}

// List returns metrics matching the filter, newest first.
// limit <= 0 returns all matches.
func (r *Recorder) List(f Filter, limit int) []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Metric
	for i := len(r.metrics) - 1; i >= 0; i-- {
		if !f.matches(r.metrics[i]) {
			continue
		}
		out = append(out, r.metrics[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
