// Package shell interprets command lines against an in-memory
// [filesystem.FileSystem]. A Shell owns the tree, the working directory
// and the session history; callers only ever see rendered text.
package shell

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brettbedarf/vfsh/filesystem"
	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/google/uuid"
)

// DefaultHeadLines is how many lines head prints without -n
const DefaultHeadLines = 10

// Shell is a single interpreter session. Execute serializes callers.
type Shell struct {
	mu        sync.Mutex
	id        uuid.UUID
	fs        *filesystem.FileSystem
	cwd       []string // path from root; empty is "/"
	history   *History
	commands  *Registry
	metrics   *Metrics
	headLines int
	now       func() time.Time
	logger    util.Logger
}

type Option func(*Shell)

// WithClock replaces time.Now, used by cal for the current month
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		s.now = now
	}
}

// WithMetrics records every executed line in m
func WithMetrics(m *Metrics) Option {
	return func(s *Shell) {
		s.metrics = m
	}
}

// WithHeadLines sets head's default line count
func WithHeadLines(n int) Option {
	return func(s *Shell) {
		s.headLines = n
	}
}

// WithRegistry replaces the built-in verb table
func WithRegistry(r *Registry) Option {
	return func(s *Shell) {
		s.commands = r
	}
}

// New creates a Shell over fs with the working directory at the root
func New(fs *filesystem.FileSystem, opts ...Option) *Shell {
	s := &Shell{
		id:        uuid.New(),
		fs:        fs,
		cwd:       []string{},
		history:   NewHistory(),
		commands:  NewBuiltinRegistry(),
		headLines: DefaultHeadLines,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = util.GetLogger("Shell").With().Str("session", s.id.String()).Logger()
	return s
}

func (s *Shell) ID() uuid.UUID {
	return s.id
}

// Cwd renders the working directory as an absolute path
func (s *Shell) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filesystem.JoinPath(s.cwd)
}

// History returns a copy of every accepted line in order
func (s *Shell) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Lines()
}

// Reload swaps the tree and moves the working directory back to the root.
// History is kept.
func (s *Shell) Reload(fs *filesystem.FileSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fs = fs
	s.cwd = []string{}
	s.logger.Info().Msg("Filesystem reloaded")
}

// Execute runs one command line and returns its rendered output and whether
// the session should end. Failures are rendered, never returned.
func (s *Shell) Execute(line string, fromScript bool) (output string, terminate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(line) == "" {
		return "", false
	}
	s.history.Append(line)

	start := time.Now()
	args, err := Tokenize(line)
	if err != nil {
		s.metrics.observe(parseVerb, StatusParseError, time.Since(start))
		s.logger.Debug().Err(err).Bool("script", fromScript).Msg("Parse failed")
		return fmt.Sprintf("Parse error: %s\n", err), false
	}
	if len(args) == 0 {
		return "", false
	}

	verb := args[0]
	cmd, ok := s.commands.Lookup(verb)
	if !ok {
		s.metrics.observe(unknownVerb, StatusUnknown, time.Since(start))
		s.logger.Debug().Str("verb", verb).Bool("script", fromScript).Msg("Unknown command")
		return fmt.Sprintf("Command '%s' not found.\n", verb), false
	}

	s.logger.Debug().Str("verb", verb).Bool("script", fromScript).Msg("Executing command")
	s.logger.Trace().Strs("argv", args).Send()

	output, err = cmd.Run(s, args)
	switch {
	case errors.Is(err, errExit):
		s.metrics.observe(verb, StatusOK, time.Since(start))
		return "", true
	case err != nil:
		s.metrics.observe(verb, StatusError, time.Since(start))
		s.logger.Debug().Str("verb", verb).Err(err).Msg("Command failed")
		return output + renderError(verb, err), false
	}
	s.metrics.observe(verb, StatusOK, time.Since(start))
	return output, false
}

// renderError prefixes every joined error with the verb on its own line
func renderError(verb string, err error) string {
	var b strings.Builder
	for _, e := range flatten(err) {
		b.WriteString(verb)
		b.WriteString(": ")
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, flatten(e)...)
	}
	return out
}
