// Package toolexec spawns external quality tools behind a security
// boundary: every command is validated against an executable allowlist
// and scanned for shell-injection patterns before it is spawned, and
// every spawned process is tracked so it can be terminated on shutdown.
//
// The package never asks a shell to interpret a command string. Callers
// pass an explicit argument vector; the injection scan is defense in
// depth against arguments that originated from untrusted input.
package toolexec

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// allowedExecutables is the fixed set of tool names gate-check may
// spawn. Resolution strips any path, so both "gofmt" and
// "/usr/local/bin/gofmt" resolve to the same entry.
var allowedExecutables = map[string]bool{
	// go toolchain
	"go":            true,
	"gofmt":         true,
	"goimports":     true,
	"golangci-lint": true,
	"staticcheck":   true,
	"gosec":         true,
	"dupl":          true,

	// python toolchain
	"python":  true,
	"python3": true,
	"black":   true,
	"ruff":    true,
	"mypy":    true,
	"pytest":  true,

	// node toolchain
	"node":     true,
	"npm":      true,
	"npx":      true,
	"eslint":   true,
	"prettier": true,
	"tsc":      true,

	// scanners and misc
	"gitleaks": true,
	"git":      true,
}

// unsafeSubstrings are literal shell metacharacters rejected in any
// argument.
var unsafeSubstrings = []string{
	";", "&&", "||", "|", "`", "$(", "${", ">>", ">", "<",
}

// unsafePatterns catch injection shapes the substring scan can miss.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]*\}`), // variable expansion
	regexp.MustCompile(`\$\([^)]*\)`), // command substitution
	regexp.MustCompile(`;\s*\w+`),     // command chaining
}

// AllowedExecutables returns the sorted allowlist, for diagnostics.
func AllowedExecutables() []string {
	names := make([]string, 0, len(allowedExecutables))
	for name := range allowedExecutables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateCommand checks an argument vector against the allowlist and
// the injection patterns. It returns a *ValidationError before any
// process is spawned; the runner calls it synchronously.
func ValidateCommand(argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}

	exe := filepath.Base(argv[0])
	// Only the literal windows suffix is stripped; a blanket extension
	// strip would let "python.evil" resolve to an allowed name.
	exe = strings.TrimSuffix(exe, ".exe")
	if !allowedExecutables[exe] {
		return &ValidationError{Executable: exe, Err: ErrExecutableNotAllowed}
	}

	for _, arg := range argv[1:] {
		if pattern := scanArgument(arg); pattern != "" {
			return &ValidationError{Argument: arg, Pattern: pattern, Err: ErrUnsafeArgument}
		}
	}
	return nil
}

// scanArgument returns the first matched unsafe pattern, or "".
func scanArgument(arg string) string {
	for _, sub := range unsafeSubstrings {
		if strings.Contains(arg, sub) {
			return sub
		}
	}
	for _, re := range unsafePatterns {
		if re.MatchString(arg) {
			return re.String()
		}
	}
	return ""
}
