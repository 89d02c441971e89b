//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

func runningOnWayland() bool { return false }

func nameDisplays([]Display) {}
