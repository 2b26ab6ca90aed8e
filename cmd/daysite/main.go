// cmd/daysite/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

// Dependencies is bound into every command's Run method.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	ConfigPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug  bool   `help:"Enable debug logging."`
	Config string `short:"c" default:"site.yaml" type:"path" help:"Site configuration file (optional)."`

	Gen   GenCmd   `cmd:"" default:"1" help:"Generate the site from the day log and code directories."`
	Watch WatchCmd `cmd:"" help:"Regenerate the whole site whenever an input changes."`
	Init  InitCmd  `cmd:"" help:"Create a new site scaffold."`
	New   NewCmd   `cmd:"" help:"Add a new day to the day log."`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("daysite"),
		kong.Description("daysite - static pages for a 100-days code journal"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		ConfigPath: cli.Config,
	}
	return kongCtx.Run(deps)
}
