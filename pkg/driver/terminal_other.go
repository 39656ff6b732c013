//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package driver

func isTerminal(uintptr) bool {
	return false
}
