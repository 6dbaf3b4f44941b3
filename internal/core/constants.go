package core

// File names
const (
	// ConfigFile is the gate configuration filename, kept at the
	// project root like other repo-level tool config.
	ConfigFile = "gates.yml"
)

// Built-in alias (profile) names. RegisterAll wires their membership;
// these constants exist so the CLI and hook installer agree on spelling.
const (
	// AliasCommit is the fast pre-commit profile.
	AliasCommit = "commit"
	// AliasPR adds tests and security scanning on top of commit.
	AliasPR = "pr"
	// AliasFull runs every registered gate.
	AliasFull = "full"
)
