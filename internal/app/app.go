// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taxjoin/internal/appcore"
	"taxjoin/internal/cli"
	"taxjoin/internal/clibase"
	"taxjoin/internal/cmdutil"
	"taxjoin/internal/version"
	"taxjoin/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("taxjoin")
	fs.SetOutput(outw)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			return flush(outw, stderr, appcore.ExitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.Usage()
			return flush(outw, stderr, appcore.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		fs.SetOutput(stderr)
		fs.Usage()
		return appcore.ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "taxjoin version %s\n", version.Version)
		return flush(outw, stderr, appcore.ExitOK)
	}

	logger, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.Quiet, opts.Verbose)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitUsage
	}
	logger.Debug("options", "lineage", opts.Lineage, "sequences", opts.Sequences,
		"normalize", opts.Normalize, "output", opts.Output, "sqlite", opts.SQLite)

	var progress io.Writer
	if opts.Progress && !opts.Quiet {
		progress = stderr
	}

	return appcore.Run(parent, stdout, stderr, logger, appcore.Options{
		Lineage:       opts.Lineage,
		Sequences:     opts.Sequences,
		Normalize:     opts.Normalize,
		Output:        opts.Output,
		Header:        opts.Header,
		TopN:          opts.TopN,
		Bins:          opts.Bins,
		SQLite:        opts.SQLite,
		Progress:      progress,
		EmptyExitCode: opts.EmptyExitCode,
	})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return appcore.ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return appcore.ExitRuntime
	}
	return code
}
