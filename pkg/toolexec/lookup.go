package toolexec

import "os/exec"

// IsInstalled returns true if the named tool is on PATH. The name must
// be allowlisted; unknown names report false rather than probing PATH.
func IsInstalled(name string) bool {
	if !allowedExecutables[name] {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
