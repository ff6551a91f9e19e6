package acorn

import (
	"io"

	"github.com/sirupsen/logrus"
)

type settings struct {
	logger   logrus.FieldLogger
	validate bool
}

// Option configures a [Builder].
type Option func(*settings)

// WithLogger routes the builder and container debug logs to l. By default
// nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithValidation makes [Builder.Build] walk the dependency graph of every
// registration and fail on missing dependencies or cycles, without
// constructing anything. Without it these errors surface on Resolve.
func WithValidation() Option {
	return func(s *settings) {
		s.validate = true
	}
}

func defaultSettings() settings {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return settings{logger: l}
}
