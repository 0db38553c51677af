package sommelier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jackzampolin/sommelier/internal/metrics"
)

// Comparison is one persona's answer in a ComparePersonas run.
type Comparison struct {
	PersonaKey  string `json:"persona"`
	PersonaName string `json:"persona_name"`
	Text        string `json:"text"`
	Degraded    bool   `json:"degraded"`
}

// ComparePersonas asks every registered persona for a recommendation.
// Results follow registry order whatever order the calls finish in. Nothing
// is saved and no bottles are fetched.
func (s *Sommelier) ComparePersonas(ctx context.Context, customerName, dish string) []Comparison {
	keys := s.personas.Keys()
	out := make([]Comparison, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			res := s.recommend(gctx, Request{
				CustomerName: customerName,
				Dish:         dish,
				PersonaKey:   key,
			}, metrics.OperationCompare)
			out[i] = Comparison{
				PersonaKey:  key,
				PersonaName: res.PersonaName,
				Text:        res.Text,
				Degraded:    res.Degraded(),
			}
			return nil
		})
	}
	// Recommend never fails, so Wait has nothing to report.
	_ = g.Wait()

	s.logger.Info("persona comparison complete", "personas", len(keys))
	return out
}

// CompareMap returns comparisons keyed by persona key.
func CompareMap(list []Comparison) map[string]string {
	m := make(map[string]string, len(list))
	for _, c := range list {
		m[c.PersonaKey] = c.Text
	}
	return m
}
