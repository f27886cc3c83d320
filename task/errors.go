package task

import (
	"errors"
	"fmt"
	"runtime"
)

// TaskError attributes an error to the task that returned it.
type TaskError struct {
	Task Info
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task.Name, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// TaskOf extracts the [Info] from the first [*TaskError] in err's chain.
func TaskOf(err error) (Info, bool) {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Task, true
	}
	return Info{}, false
}

// PanicError is a recovered panic with the stack of the panicking goroutine.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
