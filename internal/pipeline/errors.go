package pipeline

import "fmt"

// StepError marks which pipeline stage failed and the HTTP status the
// server should map it to.
type StepError struct {
	Step   string
	Status int
	Detail string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline step %s failed: %s", e.Step, e.Detail)
}
