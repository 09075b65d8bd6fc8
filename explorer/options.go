package explorer

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var validate = validator.New()

// ExplorerConfig is the validated configuration assembled from New's SUT,
// alphabet and options before construction proceeds. Validation is the one
// boundary check this package performs, per the rule that internal state
// is trusted and only external inputs are validated.
type ExplorerConfig struct {
	SUT      SUT       `validate:"required"`
	Alphabet *Alphabet `validate:"required"`
}

// options holds the resolved values of every ExplorerOption.
type options struct {
	logger                  *zap.Logger
	tracer                  trace.Tracer
	validators              []Validator
	maxGenerationMultiplier int
	err                     error
}

func defaultOptions() options {
	return options{
		logger:                  zap.NewNop(),
		tracer:                  otel.Tracer("github.com/go-ait/ait/explorer"),
		maxGenerationMultiplier: 3,
	}
}

// ExplorerOption configures an Explorer at construction time via the
// functional-options pattern.
type ExplorerOption func(*options)

// WithLogger attaches a structured logger; each generation of the Explore
// loop, the generation-limit warning and each state change seen by
// discover log through it. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ExplorerOption {
	return func(o *options) {
		if l == nil {
			o.err = fmt.Errorf("explorer: %w", errNilLogger)
			return
		}
		o.logger = l
	}
}

// WithTracer overrides the otel Tracer used to span Explore calls.
// Defaults to otel.Tracer("github.com/go-ait/ait/explorer").
func WithTracer(t trace.Tracer) ExplorerOption {
	return func(o *options) {
		if t == nil {
			o.err = fmt.Errorf("explorer: %w", errNilTracer)
			return
		}
		o.tracer = t
	}
}

// WithValidators appends transition validators, each called once per new
// transition before it is committed to the Maze.
func WithValidators(vs ...Validator) ExplorerOption {
	return func(o *options) {
		o.validators = append(o.validators, vs...)
	}
}

// WithMaxGenerationMultiplier overrides the iteration-limit formula
// |alphabet|^multiplier (default 3). The limit is a safety warning only,
// never an abort.
func WithMaxGenerationMultiplier(m int) ExplorerOption {
	return func(o *options) {
		if m < 1 {
			o.err = fmt.Errorf("explorer: %w", errBadMultiplier)
			return
		}
		o.maxGenerationMultiplier = m
	}
}
