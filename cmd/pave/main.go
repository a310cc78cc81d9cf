// Package main is the entry point for the pave CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pave/cmd/pave/commands"
	"go.trai.ch/pave/internal/app"
	"go.trai.ch/pave/internal/core/domain"
	_ "go.trai.ch/pave/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		var exitErr *domain.CommandExitError
		if errors.As(err, &exitErr) {
			// The child already reported its own failure; just carry the code.
			return exitErr.Code
		}
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return domain.ExitCode(err)
	}
	return 0
}
