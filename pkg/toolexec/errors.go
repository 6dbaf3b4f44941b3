package toolexec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for security rejections. Both are raised before any
// process is spawned.
var (
	// ErrExecutableNotAllowed indicates the executable is not on the
	// allowlist.
	ErrExecutableNotAllowed = errors.New("executable not allowed")

	// ErrUnsafeArgument indicates an argument matched a shell-injection
	// pattern.
	ErrUnsafeArgument = errors.New("unsafe argument")

	// ErrEmptyCommand indicates an empty argument vector.
	ErrEmptyCommand = errors.New("empty command")
)

// ValidationError wraps a security rejection with the offending input.
type ValidationError struct {
	Executable string // bare executable name, when the executable was rejected
	Argument   string // offending argument, when an argument was rejected
	Pattern    string // matched pattern, when an argument was rejected
	Err        error  // sentinel: ErrExecutableNotAllowed or ErrUnsafeArgument
}

func (e *ValidationError) Error() string {
	if e.Executable != "" {
		return fmt.Sprintf("executable %q is not on the allowlist (allowed: %s)",
			e.Executable, strings.Join(AllowedExecutables(), ", "))
	}
	return fmt.Sprintf("argument %q matches shell-injection pattern %q", e.Argument, e.Pattern)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsSecurityRejection reports whether err is a pre-spawn validation
// rejection.
func IsSecurityRejection(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
