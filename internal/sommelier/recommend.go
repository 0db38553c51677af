package sommelier

import (
	"context"
	"errors"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/prompts"
	"github.com/jackzampolin/sommelier/internal/providers"
)

// Request is one recommendation request.
type Request struct {
	CustomerName string `json:"customer_name"`
	Dish         string `json:"dish"`
	PersonaKey   string `json:"persona"`

	// SaveResponse appends the interaction to the log.
	SaveResponse bool `json:"save_response"`
	// IncludeBottles appends bottle suggestions for the recommended varietal.
	IncludeBottles bool `json:"include_bottles"`
	// MaxPrice caps bottle prices; 0 uses the searcher default.
	MaxPrice int `json:"max_price,omitempty"`
}

// DefaultRequest saves the response and skips bottle enrichment.
func DefaultRequest(customerName, dish, personaKey string) Request {
	return Request{
		CustomerName: customerName,
		Dish:         dish,
		PersonaKey:   personaKey,
		SaveResponse: true,
	}
}

// Result is the outcome of Recommend. Text is never empty.
type Result struct {
	Text        string `json:"text"`
	PersonaKey  string `json:"persona"`
	PersonaName string `json:"persona_name,omitempty"`

	Reply    *providers.Reply     `json:"reply,omitempty"`
	Varietal string               `json:"varietal,omitempty"`
	Bottles  []bottles.Suggestion `json:"bottles,omitempty"`
	Record   *interactions.Record `json:"record,omitempty"`

	// Err is set for a request that could not be served, currently only an
	// unknown persona (*personas.UnknownPersonaError). Text then carries the
	// error message.
	Err error `json:"-"`
}

// Degraded reports whether the text came from the offline fallback.
func (r Result) Degraded() bool {
	return r.Reply != nil && r.Reply.Degraded
}

// UnknownPersona reports whether the request named an unregistered persona.
func (r Result) UnknownPersona() bool {
	var unknown *personas.UnknownPersonaError
	return errors.As(r.Err, &unknown)
}

// Recommend serves one request: resolve persona, compile prompt, chat,
// optionally enrich with bottles, optionally record.
func (s *Sommelier) Recommend(ctx context.Context, req Request) Result {
	return s.recommend(ctx, req, metrics.OperationRecommend)
}

func (s *Sommelier) recommend(ctx context.Context, req Request, operation string) Result {
	persona, err := s.personas.Get(req.PersonaKey)
	if err != nil {
		s.logger.Warn("unknown persona requested", "persona", req.PersonaKey)
		return Result{Text: err.Error(), PersonaKey: req.PersonaKey, Err: err}
	}

	prompt := prompts.CompileWith(persona, req.CustomerName, req.Dish, s.promptOpts)
	reply := s.backend.Chat(ctx, prompt)
	s.metrics.RecordReply(metrics.RecordOpts{
		SessionID: s.sessionID,
		Persona:   persona.Key,
		Operation: operation,
	}, reply)

	result := Result{
		Text:        reply.Text,
		PersonaKey:  persona.Key,
		PersonaName: persona.Name,
		Reply:       reply,
	}
	if reply.Degraded {
		s.logger.Warn("recommendation degraded to offline text",
			"persona", persona.Key,
			"backend", reply.Backend,
			"error", reply.CauseMessage())
	}

	if req.IncludeBottles && s.bottles != nil {
		s.enrich(ctx, &result, req)
	}

	if req.SaveResponse {
		rec := interactions.FromReply(reply, result.Text, interactions.RecordOptions{
			CustomerName:    req.CustomerName,
			DishDescription: req.Dish,
			PersonaKey:      persona.Key,
			PersonaName:     persona.Name,
			PromptHash:      prompts.HashText(prompt),
		})
		s.log.Append(rec)
		result.Record = rec
		s.archive(ctx, rec)
	}

	s.logger.Debug("recommendation served",
		"persona", persona.Key,
		"backend", reply.Backend,
		"model", reply.Model,
		"attempts", reply.Attempts,
		"latency", reply.Latency,
		"saved", req.SaveResponse)

	return result
}

// enrich appends bottle suggestions for the first varietal in the reply.
// Replies without a recognizable varietal are left unchanged.
func (s *Sommelier) enrich(ctx context.Context, result *Result, req Request) {
	varietal, ok := bottles.ExtractVarietal(result.Text)
	if !ok {
		s.logger.Debug("no varietal in recommendation, skipping bottles", "persona", result.PersonaKey)
		return
	}
	found := s.bottles.Search(ctx, varietal, req.Dish, req.MaxPrice)
	result.Varietal = varietal
	result.Bottles = found
	result.Text += bottleSeparator + bottles.Format(found)
}

func (s *Sommelier) archive(ctx context.Context, rec *interactions.Record) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, s.sessionID, rec); err != nil {
		s.logger.Warn("failed to archive interaction",
			"record_id", rec.ID,
			"error", err)
	}
}
