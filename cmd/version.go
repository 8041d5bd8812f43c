package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/sprout/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func (a *app) version(ctx context.Context, cmd *cli.Command) error {
	fmt.Fprintf(a.stdout, "sprout version %s\n", Version)
	return nil
}
