package toolexec

import (
	"errors"
	"sort"
	"testing"
)

func TestValidateCommand_AllowedExecutables(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"go vet", []string{"go", "vet", "./..."}},
		{"gofmt list", []string{"gofmt", "-l", "."}},
		{"python module invocation", []string{"python", "-m", "pytest"}},
		{"pytest quiet", []string{"pytest", "-q"}},
		{"path-qualified executable", []string{"/usr/local/bin/gofmt", "-l", "."}},
		{"windows extension", []string{"gofmt.exe", "-l", "."}},
		{"gitleaks detect", []string{"gitleaks", "detect", "--no-banner", "--redact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateCommand(tt.argv); err != nil {
				t.Errorf("expected %v to validate, got: %v", tt.argv, err)
			}
		})
	}
}

func TestValidateCommand_RejectsDisallowedExecutables(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"rm", []string{"rm", "-rf", "/"}},
		{"bash", []string{"bash", "-c", "echo hi"}},
		{"curl", []string{"curl", "https://example.com"}},
		{"path-qualified rm", []string{"/bin/rm", "-rf", "/tmp/x"}},
		{"allowed name with bogus extension", []string{"/tmp/python.evil", "-c", "x"}},
		{"allowed name wrapped in a script", []string{"gofmt.sh", "-l", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.argv)
			if !errors.Is(err, ErrExecutableNotAllowed) {
				t.Errorf("expected ErrExecutableNotAllowed for %v, got: %v", tt.argv, err)
			}
			if !IsSecurityRejection(err) {
				t.Errorf("expected IsSecurityRejection for %v", tt.argv)
			}
		})
	}
}

func TestValidateCommand_RejectsUnsafeArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"semicolon chaining", []string{"python", "-c", "x; import os"}},
		{"command substitution", []string{"go", "vet", "$(cat /etc/passwd)"}},
		{"variable expansion", []string{"gofmt", "-l", "${HOME}"}},
		{"backtick", []string{"git", "log", "`whoami`"}},
		{"pipe", []string{"go", "test", "./... | tee out"}},
		{"and chaining", []string{"gofmt", "-l", ". && rm -rf /"}},
		{"redirect", []string{"pytest", "-q", "> /dev/null"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.argv)
			if !errors.Is(err, ErrUnsafeArgument) {
				t.Errorf("expected ErrUnsafeArgument for %v, got: %v", tt.argv, err)
			}
			if !IsSecurityRejection(err) {
				t.Errorf("expected IsSecurityRejection for %v", tt.argv)
			}
		})
	}
}

func TestValidateCommand_EmptyCommand(t *testing.T) {
	if err := ValidateCommand(nil); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("expected ErrEmptyCommand for nil argv, got: %v", err)
	}
	if err := ValidateCommand([]string{""}); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("expected ErrEmptyCommand for empty executable, got: %v", err)
	}
}

func TestValidateCommand_DangerousArgumentsWithoutMetacharactersPass(t *testing.T) {
	// Plain arguments are allowed even when they look scary to a human.
	// The boundary is the allowlist plus metacharacter scan, not a
	// semantic judgment of the tool's flags.
	if err := ValidateCommand([]string{"git", "clean", "-fdx"}); err != nil {
		t.Errorf("expected plain flags to validate, got: %v", err)
	}
}

func TestValidationError_Details(t *testing.T) {
	err := ValidateCommand([]string{"python", "-c", "x; import os"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Argument != "x; import os" {
		t.Errorf("expected offending argument in error, got %q", verr.Argument)
	}
	if verr.Pattern == "" {
		t.Error("expected matched pattern in error")
	}
}

func TestIsSecurityRejection_OtherErrors(t *testing.T) {
	if IsSecurityRejection(nil) {
		t.Error("nil is not a security rejection")
	}
	if IsSecurityRejection(errors.New("disk full")) {
		t.Error("arbitrary errors are not security rejections")
	}
}

func TestAllowedExecutables_SortedAndComplete(t *testing.T) {
	names := AllowedExecutables()
	if !sort.StringsAreSorted(names) {
		t.Error("expected sorted allowlist")
	}
	want := map[string]bool{"go": true, "gofmt": true, "pytest": true, "gitleaks": true, "git": true}
	for _, name := range names {
		delete(want, name)
	}
	if len(want) > 0 {
		t.Errorf("allowlist missing expected tools: %v", want)
	}
}
