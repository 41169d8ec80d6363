package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/midbel/cli"
	"github.com/midbel/gridcalc/config"
	"github.com/midbel/gridcalc/csv"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/formula/builtins"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/internal/tui"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
	"golang.org/x/sync/errgroup"
)

var errFail = errors.New("fail")

var (
	summary = "gridcalc"
	help    = "compute and edit small grids of cells holding values, expressions and function calls"
)

type globalOptions struct {
	ConfigFile string
	Overrides  []string
	Verbose    bool
}

var globals globalOptions

func main() {
	var (
		set  = cli.NewFlagSet("gridcalc")
		root = prepare()
	)
	set.StringVar(&globals.ConfigFile, "config", "", "load configuration from file")
	set.Func("set", "change a configuration option (path=value)", func(str string) error {
		globals.Overrides = append(globals.Overrides, str)
		return nil
	})
	set.BoolVar(&globals.Verbose, "v", false, "verbose")
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"eval"}, &evalCmd)
	root.Register([]string{"calc"}, &calcCmd)
	root.Register([]string{"shift"}, &shiftCmd)
	root.Register([]string{"funcs"}, &funcsCmd)
	root.Register([]string{"edit"}, &editCmd)
	root.Register([]string{"config"}, &configCmd)

	return root
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"run", "print"},
	Summary: "replay csv files into grids and print the computed values",
	Usage:   "eval [-m grid|edits] [-f table|csv] [-j jobs] [-n pattern] <file> [<file>,...]",
	Handler: &EvalCommand{},
}

var calcCmd = cli.Command{
	Name:    "calc",
	Summary: "compute the text of one cell",
	Usage:   "calc [-t] [-r rows] [-c cols] <text> [<addr>=<text>,...]",
	Handler: &CalcCommand{},
}

var shiftCmd = cli.Command{
	Name:    "shift",
	Alias:   []string{"offset"},
	Summary: "move the references of a formula from one cell to another",
	Usage:   "shift <from> <to> <formula>",
	Handler: &ShiftCommand{},
}

var funcsCmd = cli.Command{
	Name:    "funcs",
	Alias:   []string{"builtins"},
	Summary: "list the functions that can be called in a cell",
	Usage:   "funcs",
	Handler: &ListFuncsCommand{},
}

var editCmd = cli.Command{
	Name:    "edit",
	Summary: "edit a grid in the terminal",
	Usage:   "edit [-m grid|edits] [-log file] [<file>]",
	Handler: &EditCommand{},
}

var configCmd = cli.Command{
	Name:    "config",
	Summary: "print the configuration in use",
	Usage:   "config [-l]",
	Handler: &ConfigCommand{},
}

// loadConfig gives the configuration built from the global options.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if globals.ConfigFile != "" {
		c, err := config.Load(globals.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	for _, str := range globals.Overrides {
		if err := cfg.Apply(str); err != nil {
			return cfg, err
		}
	}
	if globals.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func createLogger(cfg config.Config, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          summary,
		ReportTimestamp: true,
	})
	return logger, nil
}

func createFormatter(cfg config.Config) (*format.ValueFormatter, error) {
	vf := format.FormatValue()
	vf.Set(format.KindBool, format.FormatBool())
	if cfg.Print.Number != "" {
		if err := vf.Number(cfg.Print.Number); err != nil {
			return nil, err
		}
	}
	return vf, nil
}

type EvalCommand struct {
	Mode   string
	Format string
	Number string
	Jobs   int
}

func (c EvalCommand) Run(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set := cli.NewFlagSet("eval")
	set.StringVar(&c.Mode, "m", "grid", "input mode (grid, edits)")
	set.StringVar(&c.Format, "f", cfg.Print.Format, "output format (table, csv)")
	set.StringVar(&c.Number, "n", cfg.Print.Number, "pattern used to print numbers")
	set.IntVar(&c.Jobs, "j", runtime.NumCPU(), "number of files loaded in parallel")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}
	mode, err := csv.ModeFromString(c.Mode)
	if err != nil {
		return err
	}
	if err := cfg.Set("print.format", c.Format); err != nil {
		return err
	}
	if err := cfg.Set("print.number", c.Number); err != nil {
		return err
	}
	logger, err := createLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	vf, err := createFormatter(cfg)
	if err != nil {
		return err
	}

	var (
		files    = set.Args()
		sessions = make([]*grid.Session, len(files))
		group    errgroup.Group
	)
	if c.Jobs > 0 {
		group.SetLimit(c.Jobs)
	}
	for i, file := range files {
		group.Go(func() error {
			s, err := csv.Open(file, cfg.Dimension(), mode, cfg.Print.Separator[0], grid.WithLogger(logger.With("file", file)))
			if err == nil {
				sessions[i] = s
			}
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	for i, s := range sessions {
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "# %s\n", files[i])
		}
		if err := printGrid(os.Stdout, s.Grid(), cfg, vf); err != nil {
			return err
		}
	}
	return nil
}

type CalcCommand struct {
	Rows int
	Cols int
	Tree bool
}

func (c CalcCommand) Run(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set := cli.NewFlagSet("calc")
	set.IntVar(&c.Rows, "r", cfg.Grid.Rows, "number of rows")
	set.IntVar(&c.Cols, "c", cfg.Grid.Cols, "number of columns")
	set.BoolVar(&c.Tree, "t", false, "print the tree of a calculated expression")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no text given")
	}
	logger, err := createLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	size := layout.Dimension{
		Lines:   c.Rows,
		Columns: c.Cols,
	}
	s, err := grid.NewSession(size, grid.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, str := range set.Args()[1:] {
		addr, text, ok := strings.Cut(str, "=")
		if !ok {
			return fmt.Errorf("%s: expected addr=text", str)
		}
		if _, err := s.CommitAddr(addr, text); err != nil {
			return err
		}
	}
	if c.Tree && formula.Classify(set.Arg(0)) == formula.KindExpression {
		expr, err := formula.Compile(set.Arg(0), s.Grid())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, formula.DumpExpr(expr))
	}
	str, err := builtins.Engine().Evaluate(set.Arg(0), s.Grid())
	if err != nil {
		fmt.Fprintln(os.Stdout, value.Display(err))
		if kind, ok := value.Kind(err); ok {
			fmt.Fprintf(os.Stderr, "%s %s\n", kind.Code(), err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return errFail
	}
	fmt.Fprintln(os.Stdout, str)
	return nil
}

type ShiftCommand struct {
	Rows int
	Cols int
}

func (c ShiftCommand) Run(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set := cli.NewFlagSet("shift")
	set.IntVar(&c.Rows, "r", cfg.Grid.Rows, "number of rows")
	set.IntVar(&c.Cols, "c", cfg.Grid.Cols, "number of columns")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 3 {
		return fmt.Errorf("expected origin, destination and formula")
	}
	size := layout.Dimension{
		Lines:   c.Rows,
		Columns: c.Cols,
	}
	from, err := layout.ParseBounded(set.Arg(0), size)
	if err != nil {
		return err
	}
	to, err := layout.ParseBounded(set.Arg(1), size)
	if err != nil {
		return err
	}
	str, err := formula.ShiftReferences(from.Position, to.Position, set.Arg(2), size)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, str)
	return nil
}

type ListFuncsCommand struct{}

func (c ListFuncsCommand) Run(args []string) error {
	set := cli.NewFlagSet("funcs")
	if err := set.Parse(args); err != nil {
		return err
	}
	return printBuiltins(os.Stdout, builtins.Registry())
}

type EditCommand struct {
	Mode    string
	LogFile string
}

func (c EditCommand) Run(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set := cli.NewFlagSet("edit")
	set.StringVar(&c.Mode, "m", "grid", "input mode (grid, edits)")
	set.StringVar(&c.LogFile, "log", cfg.Log.File, "write logs to file")
	if err := set.Parse(args); err != nil {
		return err
	}
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger, err := createLogger(cfg, out)
	if err != nil {
		return err
	}
	vf, err := createFormatter(cfg)
	if err != nil {
		return err
	}

	var s *grid.Session
	if set.NArg() > 0 {
		mode, err := csv.ModeFromString(c.Mode)
		if err != nil {
			return err
		}
		s, err = csv.Open(set.Arg(0), cfg.Dimension(), mode, cfg.Print.Separator[0], grid.WithLogger(logger))
		if err != nil {
			return err
		}
	} else {
		s, err = grid.NewSession(cfg.Dimension(), grid.WithLogger(logger))
		if err != nil {
			return err
		}
	}
	logger.Info("editor started", "size", s.Bounds())
	return tui.Run(s, tui.WithWidth(cfg.Print.Width), tui.WithFormatter(vf), tui.WithLogger(logger))
}

type ConfigCommand struct {
	List bool
}

func (c ConfigCommand) Run(args []string) error {
	set := cli.NewFlagSet("config")
	set.BoolVar(&c.List, "l", false, "list the options that can be changed")
	if err := set.Parse(args); err != nil {
		return err
	}
	if c.List {
		for _, o := range config.Options() {
			fmt.Fprintln(os.Stdout, o)
		}
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return cfg.Encode(os.Stdout)
}
