//go:build !linux

package backend

import "os/exec"

func configureChild(_ *exec.Cmd) {}
