// Command lingua inspects, formats, uploads and serves message catalogs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/lingua/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Main(ctx, os.Args[1:], cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err != nil {
		code := 1
		if errors.Is(err, cli.ErrUsage) || errors.Is(err, cli.ErrUnknownCommand) {
			code = 2
		}
		fmt.Fprintf(os.Stderr, "lingua: %v\n", err)
		stop()
		os.Exit(code)
	}
}
