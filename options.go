package enpassreaderlib

import (
	"log/slog"

	"github.com/costastf/enpassreaderlib/internal/logging"
)

// Option customizes Open.
type Option func(*options)

type options struct {
	keyFilePath string
	kdfRounds   int
	logger      logging.Logger
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithKeyFile points Open at an Enpass key file whose secret extends the
// master password.
func WithKeyFile(path string) Option {
	return func(o *options) { o.keyFilePath = path }
}

// WithKDFRounds overrides the PBKDF2 iteration count used for key
// derivation. The Enpass 6 default is 100000.
func WithKDFRounds(rounds int) Option {
	return func(o *options) { o.kdfRounds = rounds }
}

// WithLogger makes the library log its progress through l. Without it the
// library is silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = logging.NewSlogLogger(l) }
}
