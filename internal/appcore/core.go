// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"taxjoin/internal/cmdutil"
	"taxjoin/internal/dataset"
	"taxjoin/internal/output"
	"taxjoin/internal/store"
	"taxjoin/internal/summary"
	"taxjoin/internal/writers"
)

// Exit codes shared by every taxjoin entry point.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

type Options struct {
	Lineage   string
	Sequences string
	Normalize bool

	Output string
	Header bool
	TopN   int
	Bins   int
	SQLite string

	// Progress receives per-file progress bars when non-nil.
	Progress      io.Writer
	EmptyExitCode int
}

// Run loads and joins both tables, summarizes the joined records, writes
// the report to stdout and optionally saves it to SQLite.
func Run(ctx context.Context, stdout, stderr io.Writer, logger *log.Logger, o Options) int {
	outw := bufio.NewWriter(stdout)

	if o.Lineage == o.Sequences {
		cmdutil.Warnf(logger, "lineage and sequence inputs are the same path %q", o.Lineage)
	}

	res, err := dataset.Assemble(o.Lineage, o.Sequences, dataset.Options{
		Normalize: o.Normalize,
		Progress:  o.Progress,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		var missing *dataset.MissingFileError
		if errors.As(err, &missing) {
			return ExitUsage
		}
		return ExitRuntime
	}
	if ctx.Err() != nil {
		return ExitCanceled
	}

	rep := output.Report{
		Normalized: o.Normalize,
		Result:     res,
		Summary:    summary.Compute(res.Records),
		Aggregates: summary.BuildAggregates(res.Records, o.TopN, o.Bins),
	}
	logger.Debug("summary computed",
		"records", rep.Summary.TotalRecords, "unique_sequences", rep.Summary.UniqueSequences)

	if err := writers.Write(o.Output, outw, rep, writers.Options{Header: o.Header}); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return ExitRuntime
	}

	if o.SQLite != "" {
		if code := save(ctx, stderr, logger, o.SQLite, rep); code != ExitOK {
			return code
		}
	}

	if ctx.Err() != nil {
		return ExitCanceled
	}
	if len(res.Records) == 0 {
		return o.EmptyExitCode
	}
	return ExitOK
}

func save(ctx context.Context, stderr io.Writer, logger *log.Logger, path string, rep output.Report) int {
	st, err := store.Open(ctx, path)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitRuntime
	}
	defer func() { _ = st.Close() }()

	id, err := st.SaveRun(ctx, rep)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitCanceled
		}
		fmt.Fprintln(stderr, "error:", err)
		return ExitRuntime
	}
	logger.Info("run saved", "db", path, "run_id", id, "records", len(rep.Result.Records))
	return ExitOK
}
