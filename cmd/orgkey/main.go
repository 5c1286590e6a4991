// Command orgkey checks organization keys against a running onboarding
// service.
//
//	orgkey --api https://app.example.com acme my-org
//	orgkey --interactive
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/svc/organization"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{message: "Organization key:"}); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, p Prompter) error {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component("orgkey")),
	)

	c := &checker{
		lookup:  organization.NewClient(opts.API),
		timeout: opts.Timeout,
		log:     log,
	}

	if opts.Interactive {
		return interactive(ctx, p, c, stdout)
	}
	if len(opts.Suggest) > 0 {
		if err := suggest(ctx, c, opts.Suggest, stdout); err != nil {
			return err
		}
		if len(opts.Args.Keys) == 0 {
			return nil
		}
	}
	if len(opts.Args.Keys) == 0 {
		return errors.New("no keys given, pass keys, --suggest or --interactive")
	}
	return report(stdout, c.checkKeys(ctx, opts.Args.Keys))
}
