package sommelier

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/prompts"
	"github.com/jackzampolin/sommelier/internal/providers"
)

func newTestSommelier(t *testing.T, backend providers.Backend, opts ...func(*Config)) *Sommelier {
	t.Helper()
	cfg := Config{
		Personas:      personas.Default(),
		Backend:       backend,
		Bottles:       bottles.NewSearcher(bottles.Config{}),
		PromptOptions: prompts.DefaultOptions(),
		Concurrency:   4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Backend: providers.NewMockBackend()})
	assert.Error(t, err)

	_, err = New(Config{Personas: personas.Default()})
	assert.Error(t, err)

	s, err := New(Config{Personas: personas.Default(), Backend: providers.NewMockBackend()})
	require.NoError(t, err)
	assert.NotNil(t, s.History())
	assert.Equal(t, 0, s.History().Len())
}

func TestRecommend_EndToEnd(t *testing.T) {
	mock := providers.NewMockBackend()
	s := newTestSommelier(t, mock)

	req := DefaultRequest("Caitlin", "Grilled salmon with lemon butter", "professional")
	req.IncludeBottles = true
	res := s.Recommend(context.Background(), req)

	require.NoError(t, res.Err)
	assert.False(t, res.Degraded())
	assert.Equal(t, "Professional Sommelier", res.PersonaName)
	assert.Contains(t, res.Text, "Caitlin")
	assert.Contains(t, res.Text, "Chardonnay")
	assert.Equal(t, "Chardonnay", res.Varietal)
	assert.Len(t, res.Bottles, 3)
	assert.Contains(t, res.Text, bottleSeparator+bottles.Header)

	// The prompt ends with the request line.
	sent := mock.Prompts()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(sent[0]),
		prompts.RequestLine("Caitlin", "Grilled salmon with lemon butter")))

	// Saved exactly once with the final text.
	require.Equal(t, 1, s.History().Len())
	rec := s.History().All()[0]
	assert.Equal(t, "Caitlin", rec.CustomerName)
	assert.Equal(t, "Grilled salmon with lemon butter", rec.DishDescription)
	assert.Equal(t, "professional", rec.PersonaKey)
	assert.Equal(t, res.Text, rec.ResponseText)
	assert.Equal(t, prompts.HashText(sent[0]), rec.PromptHash)
	require.NotNil(t, res.Record)
	assert.Equal(t, rec.ID, res.Record.ID)
}

func TestRecommend_DefaultsSkipBottles(t *testing.T) {
	s := newTestSommelier(t, providers.NewMockBackend())
	res := s.Recommend(context.Background(), DefaultRequest("Ann", "steak", "professional"))

	assert.NotContains(t, res.Text, bottles.Header)
	assert.Empty(t, res.Bottles)
	assert.Equal(t, 1, s.History().Len())
}

func TestRecommend_NoSave(t *testing.T) {
	s := newTestSommelier(t, providers.NewMockBackend())
	req := DefaultRequest("Ann", "steak", "valley_girl")
	req.SaveResponse = false
	res := s.Recommend(context.Background(), req)

	assert.NotEmpty(t, res.Text)
	assert.Nil(t, res.Record)
	assert.Equal(t, 0, s.History().Len())
}

func TestRecommend_UnknownPersona(t *testing.T) {
	mock := providers.NewMockBackend()
	s := newTestSommelier(t, mock)

	res := s.Recommend(context.Background(), DefaultRequest("Ann", "steak", "pirate"))

	assert.True(t, res.UnknownPersona())
	var unknown *personas.UnknownPersonaError
	require.True(t, errors.As(res.Err, &unknown))
	assert.Contains(t, res.Text, "pirate")
	for _, key := range personas.Default().Keys() {
		assert.Contains(t, res.Text, key)
	}
	assert.Equal(t, int64(0), mock.RequestCount())
	assert.Equal(t, 0, s.History().Len())
}

func TestRecommend_DegradedStillAnswers(t *testing.T) {
	mock := providers.NewMockBackend()
	mock.ShouldFail = true
	s := newTestSommelier(t, mock)

	req := DefaultRequest("Ann", "steak", "professional")
	req.IncludeBottles = true
	res := s.Recommend(context.Background(), req)

	assert.True(t, res.Degraded())
	assert.True(t, strings.HasPrefix(res.Text, providers.OfflineFallback))
	// The offline text names Cabernet Sauvignon first.
	assert.Equal(t, "Cabernet Sauvignon", res.Varietal)
	require.Equal(t, 1, s.History().Len())
	assert.True(t, s.History().All()[0].Degraded)
}

func TestRecommend_NoVarietalSkipsBottles(t *testing.T) {
	mock := providers.NewMockBackend()
	mock.ResponseText = "Honey, just have a glass of something you like."
	s := newTestSommelier(t, mock)

	req := DefaultRequest("Ann", "soup", "wine_loving_grandma")
	req.IncludeBottles = true
	res := s.Recommend(context.Background(), req)

	assert.Equal(t, mock.ResponseText, res.Text)
	assert.Empty(t, res.Varietal)
}

func TestRecommend_LogOrder(t *testing.T) {
	s := newTestSommelier(t, providers.NewMockBackend())
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		s.Recommend(ctx, DefaultRequest(name, "pasta", "professional"))
	}
	all := s.History().All()
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].CustomerName)
	assert.Equal(t, "B", all[1].CustomerName)
	assert.Equal(t, "C", all[2].CustomerName)
}

type recordingArchiver struct {
	mu       sync.Mutex
	sessions []string
	ids      []string
	err      error
}

func (a *recordingArchiver) Archive(_ context.Context, sessionID string, rec *interactions.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = append(a.sessions, sessionID)
	a.ids = append(a.ids, rec.ID)
	return a.err
}

func (a *recordingArchiver) History(context.Context, string) ([]interactions.Record, error) {
	return nil, nil
}

func (a *recordingArchiver) Close() error { return nil }

func TestRecommend_Archive(t *testing.T) {
	arch := &recordingArchiver{}
	s := newTestSommelier(t, providers.NewMockBackend(), func(c *Config) {
		c.Archiver = arch
		c.SessionID = "sess-1"
	})

	res := s.Recommend(context.Background(), DefaultRequest("Ann", "steak", "professional"))
	require.NotNil(t, res.Record)
	assert.Equal(t, []string{"sess-1"}, arch.sessions)
	assert.Equal(t, []string{res.Record.ID}, arch.ids)

	// Archive failures do not affect the result or the log.
	arch.err = errors.New("redis down")
	res = s.Recommend(context.Background(), DefaultRequest("Bob", "steak", "professional"))
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, s.History().Len())
}

func TestComparePersonas(t *testing.T) {
	mock := providers.NewMockBackend()
	s := newTestSommelier(t, mock)

	list := s.ComparePersonas(context.Background(), "Ann", "lamb chops")

	keys := personas.Default().Keys()
	require.Len(t, list, len(keys))
	for i, key := range keys {
		assert.Equal(t, key, list[i].PersonaKey)
		assert.NotEmpty(t, list[i].Text)
		assert.NotEmpty(t, list[i].PersonaName)
		assert.NotContains(t, list[i].Text, bottles.Header)
	}
	assert.Equal(t, int64(len(keys)), mock.RequestCount())
	assert.Equal(t, 0, s.History().Len())

	m := CompareMap(list)
	assert.Len(t, m, len(keys))
}

// slowFirst delays the first persona so completion order differs from
// registry order.
type slowFirst struct {
	*providers.MockBackend
}

func (b slowFirst) Chat(ctx context.Context, prompt string) *providers.Reply {
	if strings.Contains(prompt, "certified Master Sommelier") {
		time.Sleep(50 * time.Millisecond)
	}
	return b.MockBackend.Chat(ctx, prompt)
}

func TestComparePersonas_OrderUnderConcurrency(t *testing.T) {
	backend := slowFirst{providers.NewMockBackend()}
	s := newTestSommelier(t, backend)

	list := s.ComparePersonas(context.Background(), "Ann", "steak")
	require.NotEmpty(t, list)
	assert.Equal(t, personas.Default().Keys()[0], list[0].PersonaKey)
	assert.Equal(t, "professional", list[0].PersonaKey)
}

func TestComparePersonas_IndependentFailures(t *testing.T) {
	mock := providers.NewMockBackend()
	mock.FailAfter = 2
	s := newTestSommelier(t, mock, func(c *Config) { c.Concurrency = 1 })

	list := s.ComparePersonas(context.Background(), "Ann", "steak")
	require.Len(t, list, 4)
	assert.False(t, list[0].Degraded)
	assert.False(t, list[1].Degraded)
	assert.True(t, list[2].Degraded)
	assert.True(t, list[3].Degraded)
	for _, c := range list {
		assert.NotEmpty(t, c.Text)
	}
}

func TestMetricsRecorded(t *testing.T) {
	recorder := metrics.NewRecorder(0)
	s := newTestSommelier(t, providers.NewMockBackend(), func(c *Config) {
		c.Metrics = recorder
		c.SessionID = "sess-1"
	})

	s.Recommend(context.Background(), DefaultRequest("Ann", "steak", "professional"))
	s.Recommend(context.Background(), DefaultRequest("Ann", "steak", "nobody"))
	s.ComparePersonas(context.Background(), "Ann", "steak")

	all := recorder.List(metrics.Filter{}, 0)
	require.Len(t, all, 1+personas.Default().Len(), "unknown personas make no backend call")

	recommends := recorder.List(metrics.Filter{Operation: metrics.OperationRecommend}, 0)
	require.Len(t, recommends, 1)
	assert.Equal(t, "sess-1", recommends[0].SessionID)
	assert.Equal(t, "professional", recommends[0].Persona)
	assert.Equal(t, "mock", recommends[0].Backend)
	assert.True(t, recommends[0].Success)

	compares := recorder.GetSummary(metrics.Filter{Operation: metrics.OperationCompare})
	assert.Equal(t, personas.Default().Len(), compares.Count)
}
