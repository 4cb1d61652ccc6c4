package config

import (
	"os"
	"path/filepath"
)

// DirName is the per-workspace state directory.
const DirName = ".grimoire"

// FindWorkspaceRoot walks up from the working directory looking for a
// .grimoire directory. If none is found the working directory is the root.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}

// DefaultConfigPath returns .grimoire/config.yaml under the workspace root.
func DefaultConfigPath() string {
	root, err := FindWorkspaceRoot()
	if err != nil {
		return filepath.Join(DirName, "config.yaml")
	}
	return filepath.Join(root, DirName, "config.yaml")
}
