// Package tui renders gate-check's terminal surface: the UICallback
// implementations, the run progress trackers, and the init wizard.
package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/EmundoT/gate-check/internal/core"
)

// TUICallback is the interactive UICallback: lipgloss-styled messages
// and huh prompts. Chosen when stdout is a terminal and no
// non-interactive flag is set.
type TUICallback struct{}

var _ core.UICallback = (*TUICallback)(nil)

// NewTUICallback creates the interactive callback.
func NewTUICallback() *TUICallback {
	return &TUICallback{}
}

func (t *TUICallback) ShowError(title, message string) { PrintError(title, message) }

func (t *TUICallback) ShowSuccess(message string) { PrintSuccess(message) }

func (t *TUICallback) ShowWarning(title, message string) { PrintWarning(title, message) }

// AskConfirmation runs a huh confirm prompt. A prompt error (for
// example a closed tty) counts as a refusal.
func (t *TUICallback) AskConfirmation(title, message string) bool {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Description(message).
		Value(&confirm).
		Affirmative("Yes").
		Negative("No").
		Run()
	return err == nil && confirm
}

func (t *TUICallback) StyleTitle(title string) string { return StyleTitle(title) }

// GetOutputMode is always OutputNormal; the other modes route to
// NonInteractiveTUICallback instead.
func (t *TUICallback) GetOutputMode() core.OutputMode {
	return core.OutputNormal
}

// IsAutoApprove is always false: interactive runs go through the prompt.
func (t *TUICallback) IsAutoApprove() bool {
	return false
}

// FormatJSON is a no-op; JSON output implies a non-interactive mode.
func (t *TUICallback) FormatJSON(_ core.JSONOutput) error {
	return nil
}
