package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/dmitrymomot/lingua/middlewares"
	"github.com/dmitrymomot/lingua/pkg/logger"
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type runFunc func(ctx context.Context, rt *runtime, args []string, s Streams) error

type command struct {
	summary string
	// setup registers the command flags on fs and returns the command body.
	setup func(fs *flag.FlagSet) runFunc
}

var commands = map[string]command{
	"fmt":        fmtCommand(),
	"keys":       keysCommand(),
	"get":        getCommand(),
	"format":     formatCommand(),
	"candidates": candidatesCommand(),
	"push":       pushCommand(),
	"migrate":    migrateCommand(),
	"serve":      serveCommand(),
}

// Main runs the subcommand named by args[0] with the remaining arguments.
func Main(ctx context.Context, args []string, s Streams) (err error) {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(s.Err)
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		usage(s.Err)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	fs := flag.NewFlagSet("lingua "+name, flag.ContinueOnError)
	fs.SetOutput(s.Err)
	run := cmd.setup(fs)

	cfg, err := ParseConfig(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := logger.New(s.Err, cfg.Log, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	defer logger.Flush(2 * time.Second)

	rt := newRuntime(cfg, log)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		err = errors.Join(err, rt.Close(closeCtx))
	}()

	log.DebugContext(ctx, "running command", slog.String("command", name))
	return run(ctx, rt, fs.Args(), s)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: lingua <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `run "lingua <command> -h" for the flags of a command`)
}
