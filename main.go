package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/olimci/sprout/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx, os.Args)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
