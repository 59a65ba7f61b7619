package sim

import "errors"

// Lifecycle errors for the simulation loop.
var (
	// ErrAlreadyRunning indicates Start was called on a loop that is not idle.
	ErrAlreadyRunning = errors.New("sim: loop already running")

	// ErrNotRunning indicates Stop was called on a loop that never started
	// or has already stopped.
	ErrNotRunning = errors.New("sim: loop not running")
)
