package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockReply(t *testing.T) {
	prompt := "Role\nInstruction\n\nCurrent Request:\nCustomer Caitlin asks: Grilled salmon with asparagus\n"
	got := MockReply(prompt)

	assert.Contains(t, got, "Caitlin")
	assert.Contains(t, got, "Chardonnay")
	assert.Contains(t, got, "Grilled salmon with asparagus")
}

func TestMockReply_Pairings(t *testing.T) {
	tests := []struct {
		dish string
		want string
	}{
		{"Ribeye steak", "Cabernet Sauvignon"},
		{"Spicy green curry", "Riesling"},
		{"Mushroom risotto", "Chianti"},
		{"Roast duck", "Pinot Noir"},
		{"Toast", "Pinot Noir"},
	}
	for _, tt := range tests {
		t.Run(tt.dish, func(t *testing.T) {
			assert.Contains(t, MockReply("Customer Al asks: "+tt.dish), tt.want)
		})
	}
}

func TestMockReply_NoRequestLine(t *testing.T) {
	got := MockReply("just some text")
	assert.Contains(t, got, "friend")
	assert.Contains(t, got, "your meal")
}

func TestMockBackend(t *testing.T) {
	t.Run("records prompts", func(t *testing.T) {
		b := NewMockBackend()
		b.Latency = 0
		b.Chat(context.Background(), "one")
		b.Chat(context.Background(), "two")

		assert.Equal(t, int64(2), b.RequestCount())
		assert.Equal(t, []string{"one", "two"}, b.Prompts())

		b.Reset()
		assert.Equal(t, int64(0), b.RequestCount())
		assert.Empty(t, b.Prompts())
	})

	t.Run("fixed response", func(t *testing.T) {
		b := &MockBackend{ResponseText: "fixed"}
		reply := b.Chat(context.Background(), "x")
		assert.Equal(t, "fixed", reply.Text)
		assert.False(t, reply.Degraded)
	})

	t.Run("fail after", func(t *testing.T) {
		b := &MockBackend{ResponseText: "ok", FailAfter: 1}
		assert.False(t, b.Chat(context.Background(), "x").Degraded)

		reply := b.Chat(context.Background(), "x")
		assert.True(t, reply.Degraded)
		assert.Equal(t, OfflineFallback, reply.Text)
	})
}
