package orders

import "time"

// Clock supplies "now" to operators that stamp wall-clock props
// (replayTime, snapshotTime, ...). Production code uses time.Now;
// harness and tests inject a deterministic clock so traces are stable.
type Clock func() time.Time

// Option configures an operator at construction time.
type Option func(*config)

type config struct {
	now Clock
}

// WithClock overrides the operator's time source.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		cfg.now = c
	}
}

func newConfig(opts []Option) config {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
