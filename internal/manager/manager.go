package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/internal/prompt"
)

// Manager serves one model through the Gate. It is safe for concurrent use;
// generation, load and unload are serialized by the Gate itself.
type Manager struct {
	gate      *inference.Gate
	templates *prompt.Registry
	pipe      *pipeline.Pipeline

	loadDefaults inference.LoadOptions
	sampling     inference.Params

	publisher EventPublisher
	log       zerolog.Logger

	// loading counts LoadModel calls in flight. The loaded state itself is
	// read from the Gate so it cannot drift from the handle.
	loading atomic.Int32
	// mu guards failed and lastErr, never the model handle.
	mu      sync.RWMutex
	failed  bool
	lastErr string

	customHost bool
	loadsTotal atomic.Uint64
	startTime  time.Time
	// now is swappable in tests.
	now func() time.Time
}

// New constructs a Manager around host with package defaults.
func New(host inference.Host) *Manager {
	return NewWithConfig(ManagerConfig{Host: host})
}

// SetEventPublisher installs p for lifecycle events. Call before serving.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

// Ready reports whether a model is loaded.
func (m *Manager) Ready() bool {
	_, ok := m.gate.Current()
	return ok
}

// Templates returns the registered prompt template names.
func (m *Manager) Templates() []string { return m.templates.Names() }

// Sampling returns the sampling defaults applied to chat requests.
func (m *Manager) Sampling() inference.Params { return m.sampling }

// setFailed records whether the latest load failed. It only surfaces as
// StateError while no model is loaded.
func (m *Manager) setFailed(failed bool, errMsg string) {
	m.mu.Lock()
	m.failed = failed
	if errMsg != "" {
		m.lastErr = errMsg
	}
	m.mu.Unlock()
}

func (m *Manager) recordError(err error) {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
}
