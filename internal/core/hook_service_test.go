package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// gitRoot creates a temp project dir with an empty .git directory.
func gitRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func readHook(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".git", "hooks", name))
	if err != nil {
		t.Fatalf("read hook %s: %v", name, err)
	}
	return string(data)
}

func TestHookInstaller_InstallAll(t *testing.T) {
	root := gitRoot(t)
	installer := NewHookInstaller(root, nil)

	if err := installer.InstallAll(); err != nil {
		t.Fatalf("InstallAll failed: %v", err)
	}

	preCommit := readHook(t, root, "pre-commit")
	if !strings.Contains(preCommit, hookMarker) {
		t.Error("pre-commit hook missing managed marker")
	}
	if !strings.Contains(preCommit, "gate-check run "+AliasCommit) {
		t.Errorf("pre-commit hook should run the commit profile:\n%s", preCommit)
	}

	prePush := readHook(t, root, "pre-push")
	if !strings.Contains(prePush, "gate-check run "+AliasPR) {
		t.Errorf("pre-push hook should run the pr profile:\n%s", prePush)
	}

	info, err := os.Stat(filepath.Join(root, ".git", "hooks", "pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("hook must be executable, mode %v", info.Mode())
	}
}

func TestHookInstaller_RefusesUnmanagedHook(t *testing.T) {
	root := gitRoot(t)
	hooksDir := filepath.Join(root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		t.Fatal(err)
	}
	userHook := "#!/bin/sh\necho my own hook\n"
	if err := os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte(userHook), 0755); err != nil {
		t.Fatal(err)
	}

	installer := NewHookInstaller(root, nil)
	err := installer.InstallAll()
	if !errors.Is(err, ErrHookExists) {
		t.Fatalf("expected ErrHookExists, got: %v", err)
	}

	if got := readHook(t, root, "pre-commit"); got != userHook {
		t.Error("unmanaged hook must not be overwritten")
	}
}

func TestHookInstaller_OverwritesManagedHook(t *testing.T) {
	root := gitRoot(t)
	installer := NewHookInstaller(root, nil)

	if err := installer.InstallAll(); err != nil {
		t.Fatal(err)
	}
	// Simulate a stale stub from an older version.
	stale := "#!/bin/sh\n" + hookMarker + "\necho stale\n"
	if err := os.WriteFile(filepath.Join(root, ".git", "hooks", "pre-commit"), []byte(stale), 0755); err != nil {
		t.Fatal(err)
	}

	if err := installer.InstallAll(); err != nil {
		t.Fatalf("reinstall over managed hook failed: %v", err)
	}
	if strings.Contains(readHook(t, root, "pre-commit"), "echo stale") {
		t.Error("managed hook should be overwritten on reinstall")
	}
}

func TestHookInstaller_UninstallRemovesOnlyManaged(t *testing.T) {
	root := gitRoot(t)
	installer := NewHookInstaller(root, nil)
	if err := installer.InstallAll(); err != nil {
		t.Fatal(err)
	}

	// Replace pre-push with a user-owned hook.
	userHook := "#!/bin/sh\necho deploy\n"
	prePush := filepath.Join(root, ".git", "hooks", "pre-push")
	if err := os.WriteFile(prePush, []byte(userHook), 0755); err != nil {
		t.Fatal(err)
	}

	if err := installer.Uninstall(); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, ".git", "hooks", "pre-commit")); !os.IsNotExist(err) {
		t.Error("managed pre-commit hook should be removed")
	}
	if got := readHook(t, root, "pre-push"); got != userHook {
		t.Error("unmanaged pre-push hook should survive uninstall")
	}
}

func TestHookInstaller_UninstallWithNoHooks(t *testing.T) {
	installer := NewHookInstaller(gitRoot(t), nil)
	if err := installer.Uninstall(); err != nil {
		t.Errorf("uninstall with nothing installed should be a no-op, got: %v", err)
	}
}

func TestHookInstaller_NotGitRepository(t *testing.T) {
	installer := NewHookInstaller(t.TempDir(), nil)

	if err := installer.InstallAll(); !errors.Is(err, ErrNotGitRepository) {
		t.Errorf("InstallAll outside a repo: got %v, want ErrNotGitRepository", err)
	}
	if err := installer.Uninstall(); !errors.Is(err, ErrNotGitRepository) {
		t.Errorf("Uninstall outside a repo: got %v, want ErrNotGitRepository", err)
	}
}
