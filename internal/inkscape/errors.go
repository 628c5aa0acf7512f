package inkscape

import (
	"fmt"
	"strings"
)

// ExecError is a failed Inkscape invocation. Transient failures (timeouts)
// are safe to retry; everything else is treated as a document or
// installation problem.
type ExecError struct {
	Bin       string
	Args      []string
	Stderr    string
	Transient bool
	Err       error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Bin, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
