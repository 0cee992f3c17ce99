package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/clausediff/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, cmp *model.Comparison) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, cmp *model.Comparison) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, cmp)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		expected := []string{"first", "second", "third"}
		names := p.StepNames()
		if len(names) != len(expected) {
			t.Fatalf("expected %d names, got %v", len(expected), names)
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order and records them", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		p := New()
		p.AddStep(&mockStep{
			name: "extract",
			doFunc: func(_ context.Context, _ *model.Comparison) error {
				executionOrder = append(executionOrder, "extract")
				return nil
			},
		})
		p.AddStep(StepFunc{
			StepName: "align",
			Fn: func(_ context.Context, _ *model.Comparison) error {
				executionOrder = append(executionOrder, "align")
				return nil
			},
		})

		cmp := model.NewComparison("master.pdf", "test.pdf")
		if err := p.Execute(context.Background(), cmp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "extract" || executionOrder[1] != "align" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(cmp.PerformedSteps) != 2 || cmp.PerformedSteps[1] != "align" {
			t.Errorf("performed steps = %v", cmp.PerformedSteps)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		next := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Comparison) error {
				return expectedErr
			},
		})
		p.AddStep(next)

		cmp := model.NewComparison("master.pdf", "test.pdf")
		err := p.Execute(context.Background(), cmp)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if next.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if len(cmp.PerformedSteps) != 0 {
			t.Errorf("failed step should not be recorded, got %v", cmp.PerformedSteps)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, model.NewComparison("a.txt", "b.txt"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
	})

	t.Run("steps see the state of earlier steps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(StepFunc{StepName: "produce", Fn: func(_ context.Context, cmp *model.Comparison) error {
			cmp.Master = &model.Document{Pages: []model.Page{{Number: 1, Text: "hello"}}}
			return nil
		}})
		var seen string
		p.AddStep(StepFunc{StepName: "consume", Fn: func(_ context.Context, cmp *model.Comparison) error {
			seen = cmp.Master.Text()
			return nil
		}})

		if err := p.Execute(context.Background(), model.NewComparison("a.txt", "b.txt")); err != nil {
			t.Fatal(err)
		}
		if seen != "hello" {
			t.Errorf("consume step saw %q", seen)
		}
	})
}
