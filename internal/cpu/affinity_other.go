//go:build !linux && !windows

package cpu

// pinToCore is a no-op on platforms without a thread-affinity syscall
// (notably macOS). Workers still get a dedicated OS thread via Dedicate.
func pinToCore(int) error {
	return nil
}
