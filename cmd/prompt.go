package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/olimci/sprout/pkg/scaffold"
)

type promptAnswers struct {
	template string
	git      bool
}

// prompt asks for the template and, unless it was given explicitly, whether
// to initialize git.
func (a *app) prompt(ctx context.Context, src scaffold.Source, git, gitSet bool) (*promptAnswers, error) {
	infos, err := scaffold.List(ctx, src)
	if err != nil {
		return nil, err
	}

	options := make([]huh.Option[string], 0, len(infos))
	for _, info := range infos {
		if !info.Compatible {
			continue
		}
		label := info.Name
		if info.Description != "" {
			label = fmt.Sprintf("%s - %s", info.Name, info.Description)
		}
		options = append(options, huh.NewOption(label, info.Name))
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no templates found in %s", src)
	}

	answers := &promptAnswers{git: git}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Please choose which project template to use").
			Options(options...).
			Value(&answers.template),
	}
	if !gitSet {
		fields = append(fields, huh.NewConfirm().
			Title("Initialize a git repository?").
			Value(&answers.git))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(a.stdin).
		WithOutput(a.stdout)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, errors.New("cancelled")
		}
		return nil, fmt.Errorf("prompting: %w", err)
	}

	return answers, nil
}
