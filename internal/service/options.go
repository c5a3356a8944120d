package service

import "time"

type options struct {
	now        func() time.Time
	observer   UseCaseObserver
	loginDelay time.Duration
}

// Option configures a service at construction.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithObserver attaches a use-case observer.
func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLoginDelay sets the pause before a login attempt is answered.
func WithLoginDelay(d time.Duration) Option {
	return func(o *options) {
		o.loginDelay = d
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, observer: NoopUseCaseObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
