package compile

// CompilationError reports a pdflatex failure with the offending log lines.
type CompilationError struct {
	Message string
	Cause   error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
