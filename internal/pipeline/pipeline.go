// Package pipeline runs one chat request through prompt rendering, the
// inference gate and output validation, retrying degenerate or malformed
// generations up to a configured ceiling.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"llamagate/internal/inference"
	"llamagate/internal/logging"
	"llamagate/internal/prompt"
)

// DefaultMaxAttempts bounds generations per request when unset.
const DefaultMaxAttempts = 5

// Generator is the inference surface the pipeline drives. *inference.Gate
// satisfies it. The builder runs under the generation lock so the prompt
// always matches the handle that consumes it.
type Generator interface {
	InferPrompt(ctx context.Context, build inference.PromptBuilder, params inference.Params) (*inference.Completion, error)
}

// Request is one chat completion in internal form.
type Request struct {
	Messages  []prompt.Message
	Functions []prompt.FunctionDefinition
	// Template overrides the template chosen at model load when non-empty.
	Template string
	Params   inference.Params
}

// Choice is a validated generated alternative.
type Choice struct {
	Index        int
	FinishReason string
	Text         string
	FunctionCall *prompt.FunctionCall
}

// Result is a validated completion.
type Result struct {
	ID       string
	Created  int64
	Usage    inference.Usage
	Choices  []Choice
	Attempts int
}

// Pipeline renders prompts and drives the generator until output validates.
type Pipeline struct {
	gen         Generator
	templates   *prompt.Registry
	maxAttempts int
	log         zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxAttempts sets the attempt ceiling; values below 1 keep the default.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithLogger sets the fallback logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New constructs a Pipeline.
func New(gen Generator, templates *prompt.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{gen: gen, templates: templates, maxAttempts: DefaultMaxAttempts, log: zerolog.Nop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// MaxAttempts returns the configured attempt ceiling.
func (p *Pipeline) MaxAttempts() int { return p.maxAttempts }

// Complete renders req and returns the first generation that validates. The
// template is resolved on every attempt from the model holding the lock, so a
// reload between attempts switches the prompt format with the model.
func (p *Pipeline) Complete(ctx context.Context, req Request) (*Result, error) {
	l := logging.FromContext(ctx, p.log)
	msgs := prompt.InjectFunctions(req.Messages, req.Functions)
	build := func(info inference.ModelInfo) (string, string, error) {
		name := req.Template
		if strings.TrimSpace(name) == "" {
			name = info.Options.TemplateName
		}
		tmpl := p.templates.Resolve(name)
		text, err := tmpl.Render(msgs)
		if err != nil {
			return "", "", err
		}
		l.Debug().Str("template", tmpl.Name()).Str("model_path", info.Path).
			Int("messages", len(msgs)).Int("prompt_len", len(text)).Msg("prompt rendered")
		return text, tmpl.Stop(), nil
	}
	return p.generate(ctx, build, req.Params)
}

type attemptState int

const (
	stateGenerating attemptState = iota
	stateValidating
	stateRetrying
	stateDone
)

// generate is the retry state machine. Gate errors are fatal and propagate;
// validation failures retry until maxAttempts generations have been made.
func (p *Pipeline) generate(ctx context.Context, build inference.PromptBuilder, params inference.Params) (*Result, error) {
	l := logging.FromContext(ctx, p.log)
	var (
		state   = stateGenerating
		attempt int
		comp    *inference.Completion
		calls   []*prompt.FunctionCall
		lastErr error
	)
	for {
		switch state {
		case stateGenerating:
			attempt++
			c, err := p.gen.InferPrompt(ctx, build, params)
			if err != nil {
				return nil, err
			}
			comp = c
			state = stateValidating
		case stateValidating:
			fcs, err := validate(comp)
			if err != nil {
				lastErr = err
				attemptsTotal.WithLabelValues(outcomeOf(err)).Inc()
				l.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", p.maxAttempts).Msg("generation rejected")
				state = stateRetrying
				continue
			}
			attemptsTotal.WithLabelValues(outcomeValid).Inc()
			calls = fcs
			state = stateDone
		case stateRetrying:
			if attempt >= p.maxAttempts {
				retriesExhaustedTotal.Inc()
				return nil, &retriesExhaustedError{attempts: attempt, last: lastErr}
			}
			state = stateGenerating
		case stateDone:
			return buildResult(comp, calls, attempt), nil
		}
	}
}

// validate applies the minimum-content check to the first choice and parses
// every function-call envelope. One bad choice invalidates the attempt.
func validate(c *inference.Completion) ([]*prompt.FunctionCall, error) {
	if len(c.Choices) == 0 {
		return nil, &ParseError{Choice: 0, Err: errNoChoices}
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Choices[0].Text)) <= 1 {
		return nil, &ParseError{Choice: c.Choices[0].Index, Err: errDegenerate}
	}
	calls := make([]*prompt.FunctionCall, len(c.Choices))
	for i, ch := range c.Choices {
		fc, err := DetectFunctionCall(ch.Text)
		if err != nil {
			return nil, &ParseError{Choice: ch.Index, Err: err}
		}
		calls[i] = fc
	}
	return calls, nil
}

func buildResult(c *inference.Completion, calls []*prompt.FunctionCall, attempts int) *Result {
	res := &Result{
		ID:       c.ID,
		Created:  c.Created,
		Usage:    c.Usage,
		Choices:  make([]Choice, len(c.Choices)),
		Attempts: attempts,
	}
	if res.ID == "" {
		res.ID = "chatcmpl-" + uuid.NewString()
	}
	if res.Created == 0 {
		res.Created = time.Now().Unix()
	}
	for i, ch := range c.Choices {
		finish := ch.FinishReason
		if finish == "" {
			finish = "stop"
		}
		res.Choices[i] = Choice{
			Index:        ch.Index,
			FinishReason: finish,
			Text:         strings.TrimLeftFunc(ch.Text, unicode.IsSpace),
			FunctionCall: calls[i],
		}
	}
	return res
}

func outcomeOf(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) && pe.degenerate() {
		return outcomeDegenerate
	}
	return outcomeParseFailure
}
