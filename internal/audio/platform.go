package audio

import (
	"runtime"

	"github.com/tphakala/malgo"
)

// GetOSName returns the current operating system name.
func GetOSName() string {
	return runtime.GOOS
}

// GetPlatformDefaultBackend returns the default audio backend for the current platform.
func GetPlatformDefaultBackend() malgo.Backend {
	switch GetOSName() {
	case "linux":
		return malgo.BackendAlsa
	case "windows":
		return malgo.BackendWasapi
	case "darwin":
		return malgo.BackendCoreaudio
	default:
		return malgo.BackendNull
	}
}
