package metrics

// SummaryByPersona groups matching metrics by persona.
func (r *Recorder) SummaryByPersona(f Filter) map[string]Summary {
	return r.groupBy(f, func(m Metric) string { return m.Persona })
}

// SummaryByBackend groups matching metrics by backend and model, keyed "backend/model".
func (r *Recorder) SummaryByBackend(f Filter) map[string]Summary {
	return r.groupBy(f, func(m Metric) string {
		if m.Model == "" {
			return m.Backend
		}
		return m.Backend + "/" + m.Model
	})
}

func (r *Recorder) groupBy(f Filter, key func(Metric) string) map[string]Summary {
	groups := make(map[string][]Metric)
	for _, m := range r.List(f, 0) {
		k := key(m)
		groups[k] = append(groups[k], m)
	}
	out := make(map[string]Summary, len(groups))
	for k, ms := range groups {
		out[k] = summarize(ms)
	}
	return out
}
