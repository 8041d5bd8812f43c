// Package vcs initializes version control in a freshly scaffolded project.
package vcs

import (
	"context"
	"fmt"

	"github.com/olimci/sprout/pkg/runner"
)

const Binary = "git"

// InitError is returned when the repository could not be initialized.
type InitError struct {
	Dir string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize git in %s: %v", e.Dir, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Init runs "git init" with dir as the working directory.
func Init(ctx context.Context, r runner.Runner, dir string) error {
	if err := r.Run(ctx, dir, Binary, "init"); err != nil {
		return &InitError{Dir: dir, Err: err}
	}
	return nil
}
