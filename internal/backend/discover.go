package backend

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// devPath is where a local development build of the backend lands,
	// relative to the working directory.
	devPath = "zig-out/bin/clipz"

	// packagedPath is the backend's location inside an application bundle,
	// relative to the directory above the running executable.
	packagedPath = "Resources/bin/clipz"
)

// Discover locates the backend executable. An explicit path wins when set;
// otherwise the development build is checked before the packaged resource.
func Discover(explicit string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	return discover(explicit, cwd, exe)
}

func discover(explicit, cwd, exe string) (string, error) {
	if explicit != "" {
		if exists(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrBackendNotFound, explicit)
	}

	var tried []string
	if cwd != "" {
		p := filepath.Join(cwd, devPath)
		if exists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}
	if exe != "" {
		p := filepath.Join(filepath.Dir(filepath.Dir(exe)), packagedPath)
		if exists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}
	return "", fmt.Errorf("%w (tried %v)", ErrBackendNotFound, tried)
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
