package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autolab-dev/uia-runner/pkg/keyword"
	"github.com/autolab-dev/uia-runner/pkg/logger"
	"github.com/autolab-dev/uia-runner/pkg/repository"
)

// StepResult is the outcome of one executed step.
type StepResult struct {
	Step     Step
	Err      error
	Duration time.Duration
}

// RunResult is the outcome of a script run.
type RunResult struct {
	Results []StepResult
	Failed  bool
}

// Passed returns true when every executed step succeeded.
func (r *RunResult) Passed() bool {
	return !r.Failed
}

// Runner executes scripts through a keyword library.
type Runner struct {
	lib  *keyword.Library
	repo *repository.Repository
}

// NewRunner creates a Runner. repo may be nil when scripts use only
// literal locators.
func NewRunner(lib *keyword.Library, repo *repository.Repository) *Runner {
	return &Runner{lib: lib, repo: repo}
}

// Run executes the script sequentially, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, s *Script) (*RunResult, error) {
	result := &RunResult{}

	for i, step := range s.Steps {
		start := time.Now()
		err := r.runStep(ctx, step)
		elapsed := time.Since(start)

		result.Results = append(result.Results, StepResult{
			Step:     step,
			Err:      err,
			Duration: elapsed,
		})

		if err != nil {
			logger.Error("step %d (%s) failed after %v: %v", i+1, step.Describe(), elapsed, err)
			result.Failed = true
			return result, nil
		}
		logger.Info("step %d (%s) passed in %v", i+1, step.Describe(), elapsed)

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	return result, nil
}

// resolveLocator expands "@name" references through the repository;
// anything else is a literal locator string.
func (r *Runner) resolveLocator(loc string) (string, error) {
	if !strings.HasPrefix(loc, "@") {
		return loc, nil
	}
	if r.repo == nil {
		return "", fmt.Errorf("locator reference %s used without a repository", loc)
	}
	return r.repo.Get(loc[1:])
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch s := step.(type) {
	case *ClickStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		switch s.StepType {
		case StepDoubleClick:
			return r.lib.DoubleClick(ctx, loc)
		case StepRightClick:
			return r.lib.RightClick(ctx, loc)
		default:
			return r.lib.Click(ctx, loc)
		}

	case *FocusStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		return r.lib.Focus(ctx, loc)

	case *SetTextStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		return r.lib.SetText(ctx, loc, s.Text)

	case *ToggleStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		return r.lib.Toggle(ctx, loc)

	case *AssertExistsStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		return r.lib.ElementShouldExist(ctx, loc)

	case *AssertTextStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		text, err := r.lib.GetText(ctx, loc)
		if err != nil {
			return err
		}
		if text != s.Expected {
			return fmt.Errorf("text mismatch: got %q, want %q", text, s.Expected)
		}
		return nil

	case *WaitForStep:
		loc, err := r.resolveLocator(s.Locator)
		if err != nil {
			return err
		}
		waitCtx := ctx
		if s.TimeoutMs > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, time.Duration(s.TimeoutMs)*time.Millisecond)
			defer cancel()
		}
		return r.lib.WaitUntilExists(waitCtx, loc)

	case *PressKeyStep:
		return r.lib.PressKey(ctx, s.Key)

	case *ScreenshotStep:
		path := s.Path
		if path == "" {
			path = fmt.Sprintf("screenshot-%d.png", time.Now().UnixMilli())
		}
		return r.lib.TakeScreenshot(ctx, path)
	}

	return fmt.Errorf("unsupported step type: %s", step.Type())
}
