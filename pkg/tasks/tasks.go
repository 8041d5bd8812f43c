// Package tasks runs an ordered list of named tasks with enable/skip gating and
// fail-fast semantics, reporting every visible transition to an events.Handler.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/olimci/sprout/pkg/events"
)

var ErrTaskPanicked = errors.New("task panicked")

// Task describes a single step of a run.
type Task struct {
	Title  string
	Action func(ctx context.Context) error

	// Enabled, when set and false, omits the task entirely.
	Enabled func() bool

	// Skip, when set and returning a non-empty reason, reports the task as skipped.
	Skip func() string
}

// TaskError attaches the failing task's title to the underlying error.
type TaskError struct {
	Title string
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Run executes tasks strictly in order. The first failing task halts the run;
// its error is returned as a *TaskError and no later task runs. Completed work
// is not rolled back.
func Run(ctx context.Context, list []Task, handler events.Handler) error {
	if handler == nil {
		handler = events.NewNoopHandler()
	}

	for _, task := range list {
		if task.Enabled != nil && !task.Enabled() {
			continue
		}

		if task.Skip != nil {
			if reason := task.Skip(); reason != "" {
				handler.Handle(events.Event{Kind: events.TaskSkipped, Title: task.Title, Reason: reason})
				continue
			}
		}

		if err := ctx.Err(); err != nil {
			handler.Handle(events.Event{Kind: events.TaskFailed, Title: task.Title, Error: err})
			return &TaskError{Title: task.Title, Err: err}
		}

		handler.Handle(events.Event{Kind: events.TaskStarted, Title: task.Title})

		if err := run(ctx, task); err != nil {
			handler.Handle(events.Event{Kind: events.TaskFailed, Title: task.Title, Error: err})
			return &TaskError{Title: task.Title, Err: err}
		}

		handler.Handle(events.Event{Kind: events.TaskSucceeded, Title: task.Title})
	}

	return nil
}

func run(ctx context.Context, task Task) (err error) {
	if task.Action == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	return task.Action(ctx)
}
