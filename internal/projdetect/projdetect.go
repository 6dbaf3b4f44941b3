// Package projdetect provides project toolchain detection utilities.
// This package is used for consistent toolchain identification across:
// - Gate applicability checks (only run pytest where pytest makes sense)
// - The init wizard (pre-select gates matching the project)
// - The status verb (explain why a gate would be skipped)
//
// Detection is marker-file based: go.mod marks a Go project,
// pyproject.toml/setup.py/requirements.txt mark Python, package.json
// marks Node. A repository can carry several toolchains at once.
package projdetect

import (
	"os"
	"path/filepath"
)

// Toolchain represents a detected project toolchain.
type Toolchain string

// Toolchain constants for the ecosystems gate-check ships gates for.
const (
	// ToolchainGo represents a Go module (go.mod present).
	ToolchainGo Toolchain = "go"

	// ToolchainPython represents a Python project.
	ToolchainPython Toolchain = "python"

	// ToolchainNode represents a Node/JavaScript project.
	ToolchainNode Toolchain = "node"
)

// markers maps each toolchain to the files whose presence identifies it.
var markers = map[Toolchain][]string{
	ToolchainGo:     {"go.mod"},
	ToolchainPython: {"pyproject.toml", "setup.py", "requirements.txt"},
	ToolchainNode:   {"package.json"},
}

// Info contains the toolchains detected at a project root.
type Info struct {
	root       string
	toolchains map[Toolchain]bool
}

// Detect inspects the project root for toolchain marker files.
func Detect(root string) *Info {
	info := &Info{root: root, toolchains: make(map[Toolchain]bool)}
	for toolchain, files := range markers {
		for _, file := range files {
			if _, err := os.Stat(filepath.Join(root, file)); err == nil {
				info.toolchains[toolchain] = true
				break
			}
		}
	}
	return info
}

// Has reports whether the toolchain was detected.
func (i *Info) Has(toolchain Toolchain) bool {
	return i.toolchains[toolchain]
}

// Toolchains returns the detected toolchains in a fixed order.
func (i *Info) Toolchains() []Toolchain {
	var out []Toolchain
	for _, tc := range []Toolchain{ToolchainGo, ToolchainPython, ToolchainNode} {
		if i.toolchains[tc] {
			out = append(out, tc)
		}
	}
	return out
}

// IsGitRepository reports whether the root is a git work tree.
func IsGitRepository(root string) bool {
	info, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil && info.IsDir()
}
