package personas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customPersonas = `
personas:
  - key: pirate
    name: Pirate Sommelier
    role: You are a pirate who somehow runs a wine cellar.
    instruction: Recommend wines as if they were plundered treasure.
    output_format:
      - Hearty greeting
      - Wine recommendation
    context: You sail the seven seas with a hold full of Bordeaux.
    tone_markers: Say 'arr' and 'matey'.
`

func TestParse_CustomFile(t *testing.T) {
	reg, err := Parse([]byte(customPersonas))
	require.NoError(t, err)
	assert.Equal(t, []string{"pirate"}, reg.Keys())

	p, err := reg.Get("pirate")
	require.NoError(t, err)
	assert.Equal(t, "Pirate Sommelier", p.Name)
	assert.Equal(t, []string{"Hearty greeting", "Wine recommendation"}, p.OutputFormat)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ``},
		{"no personas", "personas: []\n"},
		{"missing role", `
personas:
  - key: x
    name: X
    instruction: i
    output_format: [a]
    context: c
`},
		{"unknown field", `
personas:
  - key: x
    name: X
    role: r
    instruction: i
    output_format: [a]
    context: c
    mood: grumpy
`},
		{"bad key", `
personas:
  - key: Not A Key
    name: X
    role: r
    instruction: i
    output_format: [a]
    context: c
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses built-ins", func(t *testing.T) {
		reg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 4, reg.Len())
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "personas.yaml")
		require.NoError(t, os.WriteFile(path, []byte(customPersonas), 0o644))

		reg, err := Load(path)
		require.NoError(t, err)
		assert.Contains(t, reg.Keys(), "pirate")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
