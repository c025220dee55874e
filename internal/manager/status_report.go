package manager

import (
	"llamagate/internal/schema"
	"llamagate/pkg/types"
)

// Snapshot returns a read-only view of the manager state. Loaded and unloaded
// come from the Gate's handle; loading wins while a LoadModel is in flight.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	s := Snapshot{State: StateUnloaded, Err: m.lastErr}
	failed := m.failed
	m.mu.RUnlock()
	info, ok := m.gate.Current()
	switch {
	case m.loading.Load() > 0:
		s.State = StateLoading
	case ok:
		s.State = StateLoaded
	case failed:
		s.State = StateError
	}
	if ok {
		s.ModelPath = info.Path
		s.Template = info.Options.TemplateName
	}
	return s
}

// Status builds the /status response. It never waits on the generation lock.
func (m *Manager) Status() types.StatusResponse {
	snap := m.Snapshot()
	now := m.now()
	resp := types.StatusResponse{
		State:            string(snap.State),
		Templates:        m.templates.Names(),
		MaxAttempts:      m.pipe.MaxAttempts(),
		RuntimeAvailable: m.SanityCheck().RuntimeAvailable,
		LastError:        snap.Err,
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
		LoadsTotal:       m.loadsTotal.Load(),
	}
	if info, ok := m.gate.Current(); ok {
		resp.Model = schema.ToLoadedModel(info)
	}
	return resp
}
