package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// OutputMode selects how CLI verbs render: styled terminal output,
// minimal output for scripts, or the structured JSON envelope below.
type OutputMode int

const (
	OutputNormal OutputMode = iota
	OutputQuiet
	OutputJSON
)

// NonInteractiveFlags carries the flags shared by every verb:
// the output mode plus --yes auto-approval for prompts.
type NonInteractiveFlags struct {
	Yes  bool
	Mode OutputMode
}

// JSONOutput is the envelope UICallback implementations emit for
// one-off messages (errors, confirmations refused, warnings) when the
// mode is OutputJSON. Verb payloads use CLIResponse instead.
type JSONOutput struct {
	Status  string                 `json:"status"` // "success", "error", "warning"
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *JSONError             `json:"error,omitempty"`
}

// JSONError carries the error half of a JSONOutput.
type JSONError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// CLIResponse is the structured JSON output for machine-consumed CLI
// commands.
//
// Schema:
//
//	{
//	  "success": true|false,
//	  "data": { ... },          // Command-specific payload (omitted on error)
//	  "error": {                 // Present only on failure
//	    "code": "GATE_NOT_FOUND",
//	    "message": "Human-readable description"
//	  }
//	}
type CLIResponse struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data,omitempty"`
	Error   *CLIErrorDetail `json:"error,omitempty"`
}

// CLIErrorDetail contains machine-readable error code and human-readable message.
type CLIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLI exit codes.
const (
	ExitSuccess          = 0
	ExitGatesFailed      = 1
	ExitInvalidArguments = 2
	ExitConfigError      = 3
	ExitSecurityRejected = 4
)

// CLI error codes for structured JSON error responses.
const (
	ErrCodeGateNotFound     = "GATE_NOT_FOUND"
	ErrCodeInvalidArguments = "INVALID_ARGUMENTS"
	ErrCodeNotInitialized   = "NOT_INITIALIZED"
	ErrCodeConfigError      = "CONFIG_ERROR"
	ErrCodeSecurityRejected = "SECURITY_REJECTED"
	ErrCodeHookExists       = "HOOK_EXISTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// EmitCLISuccess writes a successful CLIResponse as JSON to stdout.
func EmitCLISuccess(data interface{}) {
	resp := CLIResponse{Success: true, Data: data}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
}

// EmitCLIError writes an error CLIResponse as JSON to stdout.
// Returns the exit code for the caller to use with os.Exit.
func EmitCLIError(code string, message string, exitCode int) int {
	resp := CLIResponse{
		Success: false,
		Error:   &CLIErrorDetail{Code: code, Message: message},
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
	return exitCode
}

// CLIExitCodeForError maps structured error types to CLI exit codes.
func CLIExitCodeForError(err error) int {
	switch {
	case toolexec.IsSecurityRejection(err):
		return ExitSecurityRejected
	case errors.Is(err, ErrNotInitialized):
		return ExitConfigError
	default:
		return ExitGatesFailed
	}
}

// CLIErrorCodeForError maps structured error types to CLI error code strings.
func CLIErrorCodeForError(err error) string {
	switch {
	case toolexec.IsSecurityRejection(err):
		return ErrCodeSecurityRejected
	case errors.Is(err, ErrNotInitialized):
		return ErrCodeNotInitialized
	case errors.Is(err, ErrHookExists):
		return ErrCodeHookExists
	default:
		return ErrCodeInternalError
	}
}

// FormatCLIMessage formats a simple text message for non-JSON CLI output.
func FormatCLIMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
