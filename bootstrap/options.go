package bootstrap

import (
	"time"

	"github.com/kbukum/hostkit/di"
	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/logger"
)

// Option configures an App in NewApp. Options do not depend on the config
// type, so one set serves every host.
type Option func(*settings)

type settings struct {
	log             *logger.Logger
	container       di.Container
	gracefulTimeout time.Duration
	lifecycle       []lifecycle.Option
}

func collect(opts []Option) *settings {
	s := &settings{gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger replaces the logger built from the Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}

// WithGracefulTimeout bounds OnStop hooks plus component shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

// WithContainer supplies the container startup actions resolve from.
func WithContainer(c di.Container) Option {
	return func(s *settings) {
		s.container = c
	}
}

// WithLifecycle presets runner options applied when the runner is first
// registered, ahead of options passed to AddLifecycleActions.
func WithLifecycle(opts ...lifecycle.Option) Option {
	return func(s *settings) {
		s.lifecycle = append(s.lifecycle, opts...)
	}
}
