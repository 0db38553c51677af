package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/sommelier/internal/providers"
)

func reply(backend string, latency time.Duration, degraded bool) *providers.Reply {
	r := &providers.Reply{
		Text:             "Try a Pinot Noir.",
		Backend:          backend,
		Model:            "m1",
		Attempts:         1,
		PromptTokens:     100,
		CompletionTokens: 50,
		Latency:          latency,
	}
	if degraded {
		r.Degraded = true
		r.Cause = errors.New("boom")
		r.Attempts = 2
	}
	return r
}

func TestFromReply(t *testing.T) {
	m := FromReply(reply("groq", time.Second, false), RecordOpts{SessionID: "s1", Persona: "casual", Operation: OperationRecommend})
	assert.Equal(t, "s1", m.SessionID)
	assert.Equal(t, "casual", m.Persona)
	assert.Equal(t, 150, m.TotalTokens)
	assert.Equal(t, 1.0, m.LatencySeconds)
	assert.True(t, m.Success)
	assert.Empty(t, m.ErrorType)

	d := FromReply(reply("groq", time.Second, true), RecordOpts{})
	assert.False(t, d.Success)
	assert.Equal(t, ErrorTypeDegraded, d.ErrorType)
	assert.Equal(t, 2, d.Attempts)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.RecordReply(RecordOpts{}, reply("groq", 0, false))
}

func TestRecorder_Capacity(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 5; i++ {
		r.RecordReply(RecordOpts{Persona: string(rune('a' + i))}, reply("groq", 0, false))
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Dropped())

	list := r.List(Filter{}, 0)
	require.Len(t, list, 3)
	assert.Equal(t, "e", list[0].Persona, "newest first")
	assert.Equal(t, "c", list[2].Persona)
}

func TestRecorder_FilterAndSummary(t *testing.T) {
	r := NewRecorder(0)
	r.RecordReply(RecordOpts{SessionID: "s1", Persona: "casual", Operation: OperationRecommend}, reply("groq", 1*time.Second, false))
	r.RecordReply(RecordOpts{SessionID: "s1", Persona: "snob", Operation: OperationCompare}, reply("groq", 2*time.Second, false))
	r.RecordReply(RecordOpts{SessionID: "s2", Persona: "casual", Operation: OperationCompare}, reply("ollama", 3*time.Second, true))

	assert.Len(t, r.List(Filter{SessionID: "s1"}, 0), 2)
	assert.Len(t, r.List(Filter{Backend: "ollama"}, 0), 1)
	assert.Len(t, r.List(Filter{}, 2), 2)

	failed := false
	assert.Len(t, r.List(Filter{Success: &failed}, 0), 1)

	s := r.GetSummary(Filter{})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.SuccessCount)
	assert.Equal(t, 1, s.DegradedCount)
	assert.Equal(t, 450, s.TotalTokens)
	assert.Equal(t, 6*time.Second, s.TotalTime)
	assert.InDelta(t, 2.0, s.AvgTimeSeconds, 1e-9)
	assert.InDelta(t, 4.0/3.0, s.AvgAttempts, 1e-9)

	byPersona := r.SummaryByPersona(Filter{})
	assert.Equal(t, 2, byPersona["casual"].Count)
	assert.Equal(t, 1, byPersona["snob"].Count)

	byBackend := r.SummaryByBackend(Filter{Operation: OperationCompare})
	assert.Equal(t, 1, byBackend["groq/m1"].Count)
	assert.Equal(t, 1, byBackend["ollama/m1"].Count)

	empty := r.GetSummary(Filter{Persona: "nobody"})
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.AvgTimeSeconds)
}

func TestRecorder_Percentiles(t *testing.T) {
	r := NewRecorder(0)
	p50, p95, p99 := r.Percentiles(Filter{})
	assert.Zero(t, p50+p95+p99)

	for i := 1; i <= 100; i++ {
		r.RecordReply(RecordOpts{}, reply("groq", time.Duration(i)*time.Millisecond, false))
	}
	p50, p95, p99 = r.Percentiles(Filter{})
	assert.InDelta(t, 0.050, p50, 1e-9)
	assert.InDelta(t, 0.095, p95, 1e-9)
	assert.InDelta(t, 0.099, p99, 1e-9)
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder(50)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				r.RecordReply(RecordOpts{}, reply("groq", 0, false))
				_ = r.GetSummary(Filter{})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, r.Len())
	assert.Equal(t, 150, r.Dropped())
}
