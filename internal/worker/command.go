package worker

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// OrchestratorName is the executable the watcher invokes.
const OrchestratorName = "build-deploy"

// ResolveOrchestrator picks the orchestrator executable: the configured path
// if set, else build-deploy next to the running executable, else PATH.
func ResolveOrchestrator(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	name := OrchestratorName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), name)
		if st, err := os.Stat(sibling); err == nil && st.Mode().IsRegular() {
			return sibling, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locating %s: %w", OrchestratorName, err)
	}
	return path, nil
}
