// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taxjoin/internal/clibase"
	"taxjoin/internal/cliutil"
	"taxjoin/internal/config"
	"taxjoin/internal/output"
)

// Options holds all CLI flags and arguments after config/env merging.
type Options struct {
	clibase.Common

	// Input
	Lineage   string
	Sequences string
	Normalize bool

	// Output
	Output        string
	TopN          int
	Bins          int
	Header        bool // true unless --no-header
	SQLite        string
	EmptyExitCode int
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

type flagVals struct {
	opt      Options
	rawNames bool
	noHeader bool
	help     bool
	examples bool
}

func register(fs *flag.FlagSet, v *flagVals) {
	d := config.Defaults()

	// Input
	fs.StringVar(&v.opt.Lineage, "lineage", "", "MIDORI2 taxon file (or '-') [*]")
	fs.StringVar(&v.opt.Lineage, "l", "", "alias of --lineage")
	fs.StringVar(&v.opt.Sequences, "sequences", "", "MIDORI2 FASTA file (or '-') [*]")
	fs.StringVar(&v.opt.Sequences, "s", "", "alias of --sequences")
	fs.BoolVar(&v.opt.Normalize, "normalize", d.Normalize, "lowercase names and replace spaces with '_' [true]")
	fs.BoolVar(&v.rawNames, "raw-names", false, "keep taxon names as written (same as --normalize=false)")

	// Output
	fs.StringVar(&v.opt.Output, "output", d.Output, "output: text | json | tsv | jsonl [text]")
	fs.StringVar(&v.opt.Output, "o", d.Output, "alias of --output")
	fs.IntVar(&v.opt.TopN, "top", d.TopN, "most frequent values listed per rank (0=all) [20]")
	fs.IntVar(&v.opt.Bins, "bins", d.Bins, "sequence length histogram bins [50]")
	fs.BoolVar(&v.noHeader, "no-header", false, "suppress TSV header line [false]")
	fs.StringVar(&v.opt.SQLite, "sqlite", "", "also save the run to this SQLite database")
	fs.IntVar(&v.opt.EmptyExitCode, "empty-exit-code", d.EmptyExitCode, "exit code when the join is empty [0]")

	clibase.Register(fs, &v.opt.Common)

	fs.BoolVar(&v.examples, "examples", false, "show quickstart examples and exit")
	fs.BoolVar(&v.help, "h", false, "show help")
	fs.BoolVar(&v.help, "help", false, "show help")
}

func usage(fs *flag.FlagSet) {
	clibase.UsageCommon(fs, fs.Name(), func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --lineage FILE --sequences FILE [options]\n", fs.Name())
		fmt.Fprintf(out, "  %s LINEAGE_FILE SEQUENCE_FILE [options]\n", fs.Name())

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -l, --lineage file          MIDORI2 taxon file (.gz ok) or '-' for STDIN [*]")
		fmt.Fprintln(out, "  -s, --sequences file        MIDORI2 FASTA file (.gz ok) or '-' for STDIN [*]")
		fmt.Fprintf(out, "      --normalize             Lowercase names and replace spaces with '_' [%s]\n", def("normalize"))
		fmt.Fprintln(out, "      --raw-names             Keep taxon names as written")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | tsv | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --top int               Most frequent values listed per rank (0=all) [%s]\n", def("top"))
		fmt.Fprintf(out, "      --bins int              Sequence length histogram bins [%s]\n", def("bins"))
		fmt.Fprintf(out, "      --no-header             Suppress TSV header line [%s]\n", def("no-header"))
		fmt.Fprintln(out, "      --sqlite file           Also save the run to a SQLite database")
		fmt.Fprintf(out, "      --empty-exit-code int   Exit code when the join is empty [%s]\n", def("empty-exit-code"))
	})
}

func examples(w io.Writer) {
	fmt.Fprintln(w, "  # Summary report for a MIDORI2 release")
	fmt.Fprintln(w, "  taxjoin -l MIDORI2_UNIQ_NUC_GB259_CO1_RAW.taxon -s MIDORI2_UNIQ_NUC_GB259_CO1_RAW.fasta")
	fmt.Fprintln(w, "\n  # Joined table as TSV, names as written")
	fmt.Fprintln(w, "  taxjoin db.taxon.gz db.fasta.gz -o tsv --raw-names > joined.tsv")
	fmt.Fprintln(w, "\n  # Full JSON report and a SQLite copy of the run")
	fmt.Fprintln(w, "  taxjoin db.taxon db.fasta -o json --sqlite runs.db")
	fmt.Fprintln(w, "\n  # Sequences from STDIN")
	fmt.Fprintln(w, "  zcat db.fasta.gz | taxjoin -l db.taxon -s - -o jsonl")
}

// ParseArgs registers and parses all flags, merges TAXJOIN_* env vars and
// the --config file below them, and validates the result.
// It returns flag.ErrHelp for -h and clibase.ErrPrintedAndExitOK after
// printing examples to fs.Output().
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var v flagVals
	register(fs, &v)

	// fs.Parse reports its own errors; the caller prints them once.
	out := fs.Output()
	fs.SetOutput(io.Discard)
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	err := fs.Parse(flagArgs)
	fs.SetOutput(out)
	usage(fs)
	if err != nil {
		return Options{}, err
	}
	if v.help {
		return Options{}, flag.ErrHelp
	}
	if v.examples {
		clibase.PrintExamples(fs.Output(), fs.Name(), examples)
		return Options{}, clibase.ErrPrintedAndExitOK
	}
	if v.opt.Version {
		return v.opt, nil
	}

	posArgs = append(posArgs, fs.Args()...)
	lin, seq, err := cliutil.PathPair(posArgs)
	if err != nil {
		return Options{}, err
	}
	if lin != "" {
		if v.opt.Lineage != "" || v.opt.Sequences != "" {
			return Options{}, errors.New("give input paths either as flags or as positionals, not both")
		}
		v.opt.Lineage, v.opt.Sequences = lin, seq
	}
	if v.rawNames {
		explicit := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "normalize" {
				explicit = true
			}
		})
		if explicit && v.opt.Normalize {
			return Options{}, errors.New("--raw-names conflicts with --normalize")
		}
		v.opt.Normalize = false
	}
	v.opt.Header = !v.noHeader

	cfg, err := config.Load(v.opt.ConfigPath)
	if err != nil {
		return Options{}, err
	}
	opt := Merge(v.opt, setFlags(fs), cfg)
	if err := Validate(&opt); err != nil {
		return Options{}, err
	}
	return opt, nil
}

// setFlags reports which canonical options were given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	alias := map[string]string{"l": "lineage", "s": "sequences", "o": "output", "q": "quiet", "raw-names": "normalize"}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if a, ok := alias[name]; ok {
			name = a
		}
		set[name] = true
	})
	return set
}

// Merge fills every option not set on the command line from cfg, which
// already layers env vars over the config file over defaults.
func Merge(opt Options, set map[string]bool, cfg config.Config) Options {
	if !set["lineage"] && opt.Lineage == "" {
		opt.Lineage = cfg.Lineage
	}
	if !set["sequences"] && opt.Sequences == "" {
		opt.Sequences = cfg.Sequences
	}
	if !set["normalize"] {
		opt.Normalize = cfg.Normalize
	}
	if !set["output"] {
		opt.Output = cfg.Output
	}
	if !set["top"] {
		opt.TopN = cfg.TopN
	}
	if !set["bins"] {
		opt.Bins = cfg.Bins
	}
	if !set["sqlite"] {
		opt.SQLite = cfg.SQLite
	}
	if !set["empty-exit-code"] {
		opt.EmptyExitCode = cfg.EmptyExitCode
	}
	if !set["log-level"] {
		opt.LogLevel = cfg.LogLevel
	}
	if !set["progress"] {
		opt.Progress = cfg.Progress
	}
	return opt
}

// Validate applies CLI invariants after merging.
func Validate(o *Options) error {
	if o.Lineage == "" || o.Sequences == "" {
		return errors.New("provide --lineage and --sequences (or two positional paths)")
	}
	if o.Lineage == "-" && o.Sequences == "-" {
		return errors.New("only one of --lineage/--sequences may read STDIN")
	}
	o.Output = strings.ToLower(o.Output)
	valid := false
	for _, f := range output.Formats {
		if o.Output == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.TopN < 0 {
		return errors.New("--top must be ≥ 0")
	}
	if o.Bins < 1 {
		return errors.New("--bins must be ≥ 1")
	}
	if o.EmptyExitCode < 0 || o.EmptyExitCode > 255 {
		return errors.New("--empty-exit-code must be between 0 and 255")
	}
	return clibase.Validate(&o.Common)
}
