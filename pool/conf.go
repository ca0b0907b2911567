package pool

// Option is a functional option for configuring a Pool at construction.
type Option func(*config)

type config struct {
	osThreads bool
	pinCPU    bool
}

func defaultConfig() *config {
	return &config{}
}

// WithOSThreads locks every worker to its own OS thread for the life of the
// pool. Useful when the callable relies on thread-local state (cgo, syscalls
// with per-thread semantics). Workers are plain goroutines by default.
func WithOSThreads() Option {
	return func(cfg *config) {
		cfg.osThreads = true
	}
}

// WithCPUPinning locks every worker to its own OS thread and pins worker i to
// core i (wrapping around when there are more workers than cores). Pinning is
// supported on linux and windows; elsewhere workers still get dedicated
// threads. Implies WithOSThreads.
func WithCPUPinning() Option {
	return func(cfg *config) {
		cfg.osThreads = true
		cfg.pinCPU = true
	}
}
