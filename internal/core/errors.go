package core

import "errors"

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrNotInitialized indicates no gates.yml exists at the project root
	ErrNotInitialized = errors.New("no gates.yml found. Run 'gate-check init' first")

	// ErrNotGitRepository indicates hook installation was attempted outside a git repo
	ErrNotGitRepository = errors.New("not a git repository (no .git directory)")

	// ErrHookExists indicates an unmanaged hook already occupies the hook path
	ErrHookExists = errors.New("hook already exists and was not installed by gate-check")
)
