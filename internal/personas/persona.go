// Package personas holds the sommelier personalities and the read-only
// registry the orchestrator resolves persona keys against.
package personas

import (
	"fmt"
	"strings"
)

// Persona is a fixed personality profile that shapes how a recommendation is phrased.
type Persona struct {
	Key          string   `yaml:"key" json:"key"`
	Name         string   `yaml:"name" json:"name"`
	Role         string   `yaml:"role" json:"role"`
	Instruction  string   `yaml:"instruction" json:"instruction"`
	OutputFormat []string `yaml:"output_format" json:"output_format"`
	Context      string   `yaml:"context" json:"context"`
	Examples     []string `yaml:"examples,omitempty" json:"examples,omitempty"`
	ToneMarkers  string   `yaml:"tone_markers,omitempty" json:"tone_markers,omitempty"`
}

// OutputFormatText renders the required response sections as a numbered list.
func (p Persona) OutputFormatText() string {
	var b strings.Builder
	for i, section := range p.OutputFormat {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, section)
	}
	return b.String()
}

// ExamplesText renders the exemplar completions, one block per example.
// Returns "" when the persona has no examples.
func (p Persona) ExamplesText() string {
	if len(p.Examples) == 0 {
		return ""
	}
	blocks := make([]string, len(p.Examples))
	for i, ex := range p.Examples {
		blocks[i] = "Example:\n" + strings.TrimSpace(ex)
	}
	return strings.Join(blocks, "\n\n")
}

// HasExamples reports whether the persona carries exemplar completions.
func (p Persona) HasExamples() bool {
	return len(p.Examples) > 0
}

// Validate checks the required fields are present and non-blank.
func (p Persona) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"key", p.Key},
		{"name", p.Name},
		{"role", p.Role},
		{"instruction", p.Instruction},
		{"context", p.Context},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("persona %q: %s is required", p.Key, r.field)
		}
	}
	if len(p.OutputFormat) == 0 {
		return fmt.Errorf("persona %q: output_format is required", p.Key)
	}
	for i, section := range p.OutputFormat {
		if strings.TrimSpace(section) == "" {
			return fmt.Errorf("persona %q: output_format[%d] is empty", p.Key, i)
		}
	}
	return nil
}

// UnknownPersonaError is returned when a key is not registered.
type UnknownPersonaError struct {
	Key       string
	Available []string
}

func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("Unknown persona: %s. Available: %s", e.Key, strings.Join(e.Available, ", "))
}
