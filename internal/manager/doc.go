// Package manager is the orchestration layer between the HTTP surface and the
// inference core. It owns the Gate, the template registry and the retry
// pipeline, and is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, readiness.
//   - config.go: ManagerConfig and package defaults.
//   - types.go: lifecycle State and Snapshot.
//   - errors.go: error types and helpers (IsModelFileNotFound).
//   - ops.go: LoadModel, UnloadModel and ChatCompletion.
//   - status_report.go: Status/Snapshot reporting for /status.
//   - sanity.go: runtime availability checks.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//
// Build tags and runtimes:
//
//   - In-process llama: the go-llama.cpp host in internal/inference is
//     enabled with `-tags=llama`. Without the tag the host is a stub and
//     LoadModel fails with a dependency-unavailable error (HTTP 503).
//
// External packages should use public methods only. Internal fields are
// subject to change.
package manager
