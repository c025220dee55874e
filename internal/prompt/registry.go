package prompt

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Template renders a message sequence into a model prompt.
type Template interface {
	// Name is the registry key for the template.
	Name() string
	// Render returns the prompt text for msgs. It must be pure.
	Render(msgs []Message) (string, error)
	// Stop is the sequence that ends a generated turn, empty when the
	// format has no natural terminator.
	Stop() string
}

// DefaultTemplateName is used when no template is configured and as the
// fallback for unknown names.
const DefaultTemplateName = "default"

// Registry maps template names to renderers.
//
// Unknown names resolve to the default template instead of failing so that
// configuration written for newer builds keeps loading. The fallback is logged
// at warn level; callers that need strictness use Lookup.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	log       zerolog.Logger
}

// NewRegistry returns a registry holding the built-in templates.
func NewRegistry(log zerolog.Logger) *Registry {
	r := &Registry{templates: make(map[string]Template), log: log}
	r.Register(defaultTemplate{})
	r.Register(newChatMLTemplate())
	return r
}

// Register adds or replaces a template under its name.
func (r *Registry) Register(t Template) {
	r.mu.Lock()
	r.templates[normalizeName(t.Name())] = t
	r.mu.Unlock()
}

// Lookup returns the template registered under name.
func (r *Registry) Lookup(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[normalizeName(name)]
	return t, ok
}

// Resolve returns the template registered under name, or the default template.
// An empty name selects the default without a warning.
func (r *Registry) Resolve(name string) Template {
	if t, ok := r.Lookup(name); ok {
		return t
	}
	if strings.TrimSpace(name) != "" {
		r.log.Warn().Str("template", name).Msg("unknown prompt template, using default")
	}
	t, _ := r.Lookup(DefaultTemplateName)
	return t
}

// Names lists registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.templates))
	for n := range r.templates {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func normalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
