package manager

// State is the lifecycle state of the served model.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateError    State = "error"
)

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State     State
	ModelPath string
	Template  string
	Err       string
}
