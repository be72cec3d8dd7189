// Package effectrun drives one script's Generate call through the
// EffectStatus lifecycle, observing cancellation at phase boundaries
// and classifying failures the way the driving effect layer must:
// compilation, loading, general, and cancellation are caught
// separately and mapped to distinct statuses.
package effectrun

// Status is the driving effect's lifecycle status.
type Status int

const (
	Initializing Status = iota
	Loading
	Configuring
	Updating
	Ready
	CompilationFailed
	LoadingFailed
	ExecutionFailed
	UpdateCanceled
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case Loading:
		return "Loading"
	case Configuring:
		return "Configuring"
	case Updating:
		return "Updating"
	case Ready:
		return "Ready"
	case CompilationFailed:
		return "CompilationFailed"
	case LoadingFailed:
		return "LoadingFailed"
	case ExecutionFailed:
		return "ExecutionFailed"
	case UpdateCanceled:
		return "UpdateCanceled"
	default:
		return "Unknown"
	}
}

// Outcome is what a Runner reports for one script run.
type Outcome struct {
	Status Status
	Err    error
	// Log is the run's accumulated log text, retained even on a fatal
	// status so callers can display it.
	Log string
}
