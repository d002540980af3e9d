// Package logging configures the structured logger shared by the runtime.
//
// Packages never hold on to a logger; they call [Get] at the point of use so
// that a later [Setup] takes effect everywhere.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Options configure Setup.
type Options struct {
	// Verbosity maps to a level: 0 warn, 1 info, 2 debug, 3 and above trace.
	Verbosity int

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer

	// Human switches to zerolog's console format.
	Human bool
}

// Setup configures the global logger.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Human {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}
	log.Debug().Int("verbosity", opts.Verbosity).Msg("logger initialized")
}

// Level returns the zerolog level for a verbosity count.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Get returns a logger tagged with the component name. The pointer lets
// callers chain level methods directly on the result.
func Get(component string) *zerolog.Logger {
	l := log.With().Str("component", component).Logger()
	return &l
}
