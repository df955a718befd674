package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gridkit/internal/validator"

	"go.uber.org/zap"
)

// Sink is the side-effecting edge of the engine. It records results in the
// registry and writes formatted groups to a diagnostic stream.
type Sink struct {
	mu        sync.Mutex
	registry  *Registry
	out       io.Writer
	logger    *zap.Logger
	formatter Formatter
	enabled   bool
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithWriter sets the diagnostic stream (stderr by default).
func WithWriter(w io.Writer) SinkOption {
	return func(s *Sink) { s.out = w }
}

// WithLogger attaches a structured logger that receives one entry per emit.
func WithLogger(l *zap.Logger) SinkOption {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFormatter overrides the plain formatter.
func WithFormatter(f Formatter) SinkOption {
	return func(s *Sink) { s.formatter = f }
}

// NewSink creates a sink over reg. When enabled is false Emit writes nothing.
func NewSink(reg *Registry, enabled bool, opts ...SinkOption) *Sink {
	if reg == nil {
		reg = NewRegistry()
	}
	s := &Sink{
		registry:  reg,
		out:       os.Stderr,
		logger:    zap.NewNop(),
		formatter: NewFormatter(PlainPalette()),
		enabled:   enabled,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry the sink records into.
func (s *Sink) Registry() *Registry {
	return s.registry
}

// Enabled reports whether Emit writes output.
func (s *Sink) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled switches output on or off.
func (s *Sink) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// Record upserts the component's latest result.
func (s *Sink) Record(name string, r validator.Result) {
	s.registry.Record(name, r)
}

// Format returns the text Emit would write.
func (s *Sink) Format(name string, r validator.Result) string {
	return s.formatter.Format(name, r)
}

// Emit writes name's result as labelled groups. Emitting the same result twice
// writes the same text twice.
func (s *Sink) Emit(name string, r validator.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}

	s.logger.Debug("validation result",
		zap.String("component", name),
		zap.Int("errors", len(r.Errors)),
		zap.Int("warnings", len(r.Warnings)),
		zap.Int("suggestions", len(r.Suggestions)),
	)

	if _, err := io.WriteString(s.out, s.formatter.Format(name, r)); err != nil {
		return fmt.Errorf("emit %s: %w", name, err)
	}
	return nil
}

// EmitAll emits every registered component in name order.
func (s *Sink) EmitAll() error {
	for _, name := range s.registry.Names() {
		r, _ := s.registry.Get(name)
		if err := s.Emit(name, r); err != nil {
			return err
		}
	}
	return nil
}

// EmitFixes writes auto-fix instructions for name under their own group.
func (s *Sink) EmitFixes(name string, fixes []string) error {
	if len(fixes) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	if _, err := io.WriteString(s.out, s.formatter.FormatFixes(name, fixes)); err != nil {
		return fmt.Errorf("emit fixes %s: %w", name, err)
	}
	return nil
}
