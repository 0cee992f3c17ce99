package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/clausediff/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the comparison
// state accumulated by previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the state to modify.
	Do(ctx context.Context, cmp *model.Comparison) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// StepFunc adapts a named function to the Step interface.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, cmp *model.Comparison) error
}

// Do calls s.Fn.
func (s StepFunc) Do(ctx context.Context, cmp *model.Comparison) error {
	return s.Fn(ctx, cmp)
}

// Name returns s.StepName.
func (s StepFunc) Name() string {
	return s.StepName
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps should handle their own cancellation. This keeps
// state consistent between steps while still respecting cancellation.
//
// Returns the first error encountered; later steps are not run.
func (p *Pipeline) Execute(ctx context.Context, cmp *model.Comparison) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name())

		start := time.Now()
		if err := step.Do(ctx, cmp); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"elapsed", time.Since(start),
				"error", err,
			)
			return err
		}
		p.logger.Debug("step completed",
			"step", step.Name(),
			"elapsed", time.Since(start),
		)

		cmp.PerformedSteps = append(cmp.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
