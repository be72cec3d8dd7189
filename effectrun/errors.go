package effectrun

import "fmt"

// CompilationError wraps a failure a script host raises while
// compiling a script, before generation begins.
type CompilationError struct{ Err error }

func (e *CompilationError) Error() string { return fmt.Sprintf("compilation failed: %v", e.Err) }
func (e *CompilationError) Unwrap() error { return e.Err }

// LoadingError wraps a failure reading an asset or dependency a script
// needs before it can run.
type LoadingError struct{ Err error }

func (e *LoadingError) Error() string { return fmt.Sprintf("loading failed: %v", e.Err) }
func (e *LoadingError) Unwrap() error { return e.Err }
