// Package prompts composes persona prompts from the embedded sommelier template.
//
// Compilation is pure: the same persona, customer name and dish always yield
// byte-identical output, and nothing is truncated or validated.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/jackzampolin/sommelier/internal/personas"
)

//go:embed sommelier.tmpl
var sommelierTmpl string

var sommelierTemplate = template.Must(template.New("sommelier").Parse(sommelierTmpl))

// Options control optional prompt sections.
type Options struct {
	IncludeExamples bool
}

// DefaultOptions includes persona examples.
func DefaultOptions() Options {
	return Options{IncludeExamples: true}
}

type templateData struct {
	Role         string
	Instruction  string
	Tone         string
	OutputFormat string
	Context      string
	Examples     string
	Request      string
}

// Compile builds the prompt for a customer's dish with default options.
func Compile(p personas.Persona, customerName, dish string) string {
	return CompileWith(p, customerName, dish, DefaultOptions())
}

// CompileWith builds the prompt in fixed section order: role, instruction,
// tone (when set), output format, context, examples (when set and enabled),
// then the current request line.
func CompileWith(p personas.Persona, customerName, dish string, opts Options) string {
	data := templateData{
		Role:         p.Role,
		Instruction:  p.Instruction,
		Tone:         p.ToneMarkers,
		OutputFormat: p.OutputFormatText(),
		Context:      p.Context,
		Request:      RequestLine(customerName, dish),
	}
	if opts.IncludeExamples {
		data.Examples = p.ExamplesText()
	}

	var buf bytes.Buffer
	if err := sommelierTemplate.Execute(&buf, data); err != nil {
		// Only reachable if the embedded template itself is broken.
		panic(fmt.Sprintf("sommelier prompt template: %v", err))
	}
	return buf.String()
}

// RequestLine is the synthesized request line that closes every prompt.
func RequestLine(customerName, dish string) string {
	return fmt.Sprintf("Customer %s asks: %s", customerName, dish)
}
