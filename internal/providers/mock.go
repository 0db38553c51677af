package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockBackend is a Backend for tests and offline development.
type MockBackend struct {
	// Configurable behavior
	Latency    time.Duration
	ShouldFail bool
	FailAfter  int // Fail after N requests (0 = never)

	// ResponseText is returned verbatim when set; otherwise Respond builds the reply.
	ResponseText string
	Respond      func(prompt string) string

	requestCount atomic.Int64

	mu      sync.Mutex
	prompts []string
}

// NewMockBackend creates a mock backend that answers with MockReply.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Latency: 10 * time.Millisecond,
		Respond: MockReply,
	}
}

// Name returns the backend identifier.
func (b *MockBackend) Name() string {
	return MockName
}

// Chat records the prompt and answers after Latency.
func (b *MockBackend) Chat(ctx context.Context, prompt string) *Reply {
	start := time.Now()
	count := b.requestCount.Add(1)

	b.mu.Lock()
	b.prompts = append(b.prompts, prompt)
	b.mu.Unlock()

	if b.ShouldFail {
		return degradedReply(MockName, MockName, 1, start,
			&BackendUnavailableError{Backend: MockName, Err: errors.New("mock backend configured to fail")})
	}
	if b.FailAfter > 0 && int(count) > b.FailAfter {
		return degradedReply(MockName, MockName, 1, start,
			&BackendUnavailableError{Backend: MockName, Err: fmt.Errorf("mock backend failed after %d requests", b.FailAfter)})
	}

	if b.Latency > 0 {
		select {
		case <-time.After(b.Latency):
		case <-ctx.Done():
			return degradedReply(MockName, MockName, 1, start, ctx.Err())
		}
	}

	text := b.ResponseText
	if text == "" {
		respond := b.Respond
		if respond == nil {
			respond = MockReply
		}
		text = respond(prompt)
	}

	return &Reply{
		Text:             text,
		Backend:          MockName,
		Model:            MockName,
		Attempts:         1,
		PromptTokens:     len(prompt) / 4,
		CompletionTokens: len(text) / 4,
		Latency:          time.Since(start),
	}
}

// RequestCount returns the number of Chat calls made.
func (b *MockBackend) RequestCount() int64 {
	return b.requestCount.Load()
}

// Prompts returns the prompts received, in call order.
func (b *MockBackend) Prompts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.prompts))
	copy(out, b.prompts)
	return out
}

// Reset clears the request counter and recorded prompts.
func (b *MockBackend) Reset() {
	b.requestCount.Store(0)
	b.mu.Lock()
	b.prompts = nil
	b.mu.Unlock()
}

var mockPairings = []struct {
	keywords []string
	wine     string
}{
	{[]string{"steak", "beef", "lamb", "burger", "ribs"}, "Cabernet Sauvignon"},
	{[]string{"salmon", "fish", "chicken", "shrimp", "lobster", "scallop"}, "Chardonnay"},
	{[]string{"pasta", "pizza", "lasagna", "risotto"}, "Chianti"},
	{[]string{"spicy", "curry", "thai", "szechuan", "jalape"}, "Riesling"},
	{[]string{"mushroom", "duck", "pork"}, "Pinot Noir"},
}

// MockReply answers a compiled sommelier prompt with a canned recommendation
// that greets the customer named in its request line.
func MockReply(prompt string) string {
	name, dish := parseRequestLine(prompt)
	if name == "" {
		name = "friend"
	}

	wine := "Pinot Noir"
	lowered := strings.ToLower(dish)
pairing:
	for _, p := range mockPairings {
		for _, kw := range p.keywords {
			if strings.Contains(lowered, kw) {
				wine = p.wine
				break pairing
			}
		}
	}

	return fmt.Sprintf("Good evening, %s. For %s I recommend a %s; it complements the dish beautifully.",
		name, dishOrDefault(dish), wine)
}

func dishOrDefault(dish string) string {
	if strings.TrimSpace(dish) == "" {
		return "your meal"
	}
	return dish
}

// parseRequestLine extracts the customer and dish from the last
// "Customer X asks: Y" line of a prompt.
func parseRequestLine(prompt string) (name, dish string) {
	const prefix = "Customer "
	const sep = " asks: "

	lines := strings.Split(strings.TrimRight(prompt, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := strings.TrimPrefix(line, prefix)
		idx := strings.Index(rest, sep)
		if idx < 0 {
			continue
		}
		return rest[:idx], rest[idx+len(sep):]
	}
	return "", ""
}

var _ Backend = (*MockBackend)(nil)
