package t2048

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// check verifies an internal invariant. A failure panics when assertions are
// fatal; otherwise it is logged and returned as an *InvariantError.
func check(logger *log.Logger, cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	err := &InvariantError{Check: fmt.Sprintf(format, args...)}
	if assertionsFatal {
		panic(err)
	}
	if logger != nil {
		logger.Error("invariant violated", "check", err.Check)
	}
	return err
}
