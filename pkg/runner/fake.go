package runner

import (
	"context"
	"fmt"
	"sync"
)

// Invocation is a single recorded call to a Fake.
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

func (i Invocation) String() string {
	return Command(i.Name, i.Args...)
}

// Fake records invocations instead of spawning processes. Errors maps a
// rendered command ("git init") to the error it should return.
type Fake struct {
	mu     sync.Mutex
	Calls  []Invocation
	Errors map[string]error

	// OnRun, when set, is called for every invocation after it is recorded.
	OnRun func(Invocation) error
}

func NewFake() *Fake {
	return &Fake{Errors: make(map[string]error)}
}

// FailOn makes the given command fail with err.
func (f *Fake) FailOn(command string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Errors == nil {
		f.Errors = make(map[string]error)
	}
	f.Errors[command] = err
	return f
}

func (f *Fake) Run(ctx context.Context, dir, name string, args ...string) error {
	inv := Invocation{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.Calls = append(f.Calls, inv)
	err := f.Errors[inv.String()]
	hook := f.OnRun
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s: %w", inv, err)
	}
	if hook != nil {
		return hook(inv)
	}
	return ctx.Err()
}

// Commands returns the rendered commands in call order.
func (f *Fake) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}
