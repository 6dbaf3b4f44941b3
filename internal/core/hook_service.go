package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// hookMarker identifies hooks written by gate-check so reinstallation
// can overwrite them without clobbering a user's own hook.
const hookMarker = "# managed by gate-check"

// hookTemplate is the shell stub written into .git/hooks. It defers all
// logic to the binary so hook behavior follows the installed version.
const hookTemplate = `#!/bin/sh
%s
exec gate-check run %s --fail-fast --quiet
`

// HookInstaller writes git hook stubs that run a gate profile.
type HookInstaller struct {
	rootDir string
	ui      UICallback
}

// NewHookInstaller creates a HookInstaller for the project root.
func NewHookInstaller(rootDir string, ui UICallback) *HookInstaller {
	if ui == nil {
		ui = &SilentUICallback{}
	}
	return &HookInstaller{rootDir: rootDir, ui: ui}
}

// hookProfiles maps git hook names to the alias each one runs.
var hookProfiles = map[string]string{
	"pre-commit": AliasCommit,
	"pre-push":   AliasPR,
}

// InstallAll installs the pre-commit and pre-push hooks. Existing
// gate-check hooks are overwritten; unmanaged hooks are left alone and
// reported as an error for that hook.
func (h *HookInstaller) InstallAll() error {
	hooksDir, err := h.hooksDir()
	if err != nil {
		return err
	}

	for _, name := range []string{"pre-commit", "pre-push"} {
		if err := h.install(hooksDir, name, hookProfiles[name]); err != nil {
			return err
		}
		h.ui.ShowSuccess(fmt.Sprintf("Installed %s hook (runs '%s' profile)", name, hookProfiles[name]))
	}
	return nil
}

// Uninstall removes gate-check managed hooks, leaving unmanaged hooks
// untouched.
func (h *HookInstaller) Uninstall() error {
	hooksDir, err := h.hooksDir()
	if err != nil {
		return err
	}

	for name := range hookProfiles {
		path := filepath.Join(hooksDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read hook %s: %w", name, err)
		}
		if !strings.Contains(string(data), hookMarker) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove hook %s: %w", name, err)
		}
		h.ui.ShowSuccess("Removed " + name + " hook")
	}
	return nil
}

// install writes one hook stub, refusing to overwrite unmanaged hooks.
func (h *HookInstaller) install(hooksDir, name, alias string) error {
	path := filepath.Join(hooksDir, name)

	if data, err := os.ReadFile(path); err == nil {
		if !strings.Contains(string(data), hookMarker) {
			return fmt.Errorf("%w: %s", ErrHookExists, path)
		}
	}

	content := fmt.Sprintf(hookTemplate, hookMarker, alias)
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return fmt.Errorf("write hook %s: %w", name, err)
	}
	return nil
}

// hooksDir locates .git/hooks under the project root.
func (h *HookInstaller) hooksDir() (string, error) {
	gitDir := filepath.Join(h.rootDir, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", ErrNotGitRepository
	}
	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("create hooks directory: %w", err)
	}
	return hooksDir, nil
}
