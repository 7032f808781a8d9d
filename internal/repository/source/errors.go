package source

// Error tags a load failure with the source that produced it.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string { return e.Source + " source: " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
