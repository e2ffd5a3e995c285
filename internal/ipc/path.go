package ipc

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSocketPath returns the per-user receiver socket.
func DefaultSocketPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir != "" {
		return filepath.Join(runtimeDir, "pane-remote", "rc.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("pane-remote-%d", os.Getuid()), "rc.sock")
}
