// Command fwrapgen generates Fortran bindings for C libraries from
// descriptor files.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/refaktor/fwrapgen"
	"github.com/refaktor/fwrapgen/binder"
	"github.com/refaktor/fwrapgen/completion"
	"github.com/refaktor/fwrapgen/config"
	"github.com/refaktor/fwrapgen/descriptor"
	"github.com/refaktor/fwrapgen/unit"
)

const programName = "fwrapgen"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  programName,
		Usage: "generate Fortran iso_c_binding interfaces and wrappers for C functions",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write the default configuration",
				ArgsUsage: "[config.toml]",
				Action:    runInit,
			},
			{
				Name:      "generate",
				Usage:     "generate a Fortran module from descriptor files",
				ArgsUsage: "<descriptor.toml|.yaml>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "configuration `FILE` (default: built-in)"},
					&cli.StringFlag{Name: "bindings", Value: "bindings.txt", Usage: "binding list `FILE`, created and updated on every run"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output `FILE` (e.g. pastixf.f90)"},
					&cli.StringFlag{Name: "description", Usage: "file description"},
					&cli.StringFlag{Name: "version", Usage: "library `VERSION` (e.g. 6.0.0)"},
					&cli.StringSliceFlag{Name: "author", Usage: "author `NAME`, repeatable"},
					&cli.StringFlag{Name: "date", Usage: "generation date (default: today)"},
					&cli.StringSliceFlag{Name: "copyright", Usage: "copyright line, repeatable"},
					&cli.StringFlag{Name: "header", Usage: "`FILE` inserted after the use statements"},
					&cli.StringFlag{Name: "footer", Usage: "`FILE` inserted after the last wrapper"},
					&cli.BoolFlag{Name: "keep-going", Aliases: []string{"k"}, Usage: "write the module even if some declarations failed"},
					&cli.StringFlag{Name: "struct-graph", Usage: "write the struct containment graph as graphviz DOT to `FILE`"},
					&cli.BoolFlag{Name: "stats", Usage: "print binding and timing stats"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug messages"},
				},
				Action: runGenerate,
			},
			{
				Name:      "completion",
				Usage:     "generate a bash completion script for a solver driver",
				ArgsUsage: "<completion.toml>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "descriptor", Aliases: []string{"d"}, Usage: "descriptor `FILE` providing enums, repeatable"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output `FILE` (default: stdout)"},
				},
				Action: runCompletion,
			},
		},
	}
}

func runInit(c *cli.Context) error {
	path := "config.toml"
	if c.Args().Present() {
		path = c.Args().First()
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "created default config at", path)
	return nil
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func loadBindingList(path string) (*config.BindingList, error) {
	bl, err := config.LoadBindingListFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.NewBindingList(), nil
	}
	return bl, err
}

func runGenerate(c *cli.Context) error {
	minLevel := INFO
	if c.Bool("verbose") {
		minLevel = DEBUG
	}
	log := NewLogger(c.App.ErrWriter, "", minLevel)
	defer log.Sync()
	fwrapgen.SetLogger(log.Zap())
	binder.SetLogger(log.Zap())

	if c.NArg() == 0 {
		return cli.Exit("no descriptor files given", 2)
	}

	var timings []timing
	timeStart := time.Now()
	lap := func(task string) {
		timings = append(timings, timing{Task: task, Time: time.Since(timeStart)})
		timeStart = time.Now()
	}

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			var cErr *config.Error
			if errors.As(err, &cErr) {
				log.Log(ERROR, "%v", cErr.String())
				return cli.Exit("invalid configuration", 1)
			}
			return fmt.Errorf("open config: %w", err)
		}
	}
	set, err := descriptor.LoadAll(c.Args().Slice()...)
	if err != nil {
		return fmt.Errorf("load descriptors: %w", err)
	}
	lap("Load config and descriptors")

	if path := c.String("struct-graph"); path != "" {
		if err := os.WriteFile(path, fwrapgen.StructGraph(set), 0666); err != nil {
			return fmt.Errorf("write struct graph: %w", err)
		}
	}

	bindingListPath := c.String("bindings")
	bindingList, err := loadBindingList(bindingListPath)
	if err != nil {
		return err
	}
	lap("Read bindings list")

	res, genErr := fwrapgen.Generate(cfg, set, bindingList)
	if genErr != nil {
		var merr *multierror.Error
		if errors.As(genErr, &merr) {
			for _, err := range merr.Errors {
				var bErr *binder.Error
				if errors.As(err, &bErr) {
					log.Log(ERROR, "%v", bErr.String())
				} else {
					log.Log(ERROR, "%v", err)
				}
			}
		} else {
			log.Log(ERROR, "%v", genErr)
		}
	}
	for _, sym := range res.Skipped {
		log.Log(DEBUG, "skipped disabled function %v", sym)
	}
	lap("Generate bindings")

	if err := bindingList.SaveToFile(bindingListPath, fwrapgen.BindingDocs(set)); err != nil {
		return fmt.Errorf("save binding list: %w", err)
	}
	lap("Write bindings list")

	if genErr != nil && !c.Bool("keep-going") {
		return cli.Exit(fmt.Sprintf("%v declaration(s) failed, not writing %v (use --keep-going to write anyway)",
			failedCount(res), c.String("out")), 1)
	}

	header, err := readOptionalFile(c.String("header"))
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	footer, err := readOptionalFile(c.String("footer"))
	if err != nil {
		return fmt.Errorf("read footer: %w", err)
	}
	date := c.String("date")
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	outFile := c.String("out")
	u := unit.Unit{
		Filename:    filepath.Base(outFile),
		Description: c.String("description"),
		Version:     c.String("version"),
		Authors:     c.StringSlice("author"),
		Date:        date,
		Copyright:   c.StringSlice("copyright"),
		Generator:   programName,
		Header:      header,
		Footer:      footer,
	}
	code, err := unit.Assemble(u, cfg.Layout, res.Blocks())
	if err != nil {
		return fmt.Errorf("assemble %v: %w", outFile, err)
	}
	if err := os.WriteFile(outFile, []byte(code), 0666); err != nil {
		return err
	}
	lap("Write code")

	if c.Bool("stats") {
		printStats(c.App.Writer, res, timings)
		fmt.Fprintln(c.App.Writer)
	}
	log.Log(INFO, "wrote bindings to %v", outFile)
	return nil
}

func failedCount(res *fwrapgen.Result) int {
	n := 0
	for _, st := range res.Stats {
		n += st.Failed
	}
	return n
}

func runCompletion(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one completion spec", 2)
	}
	spec, err := completion.Load(c.Args().First())
	if err != nil {
		return err
	}
	if paths := c.StringSlice("descriptor"); len(paths) != 0 {
		set, err := descriptor.LoadAll(paths...)
		if err != nil {
			return fmt.Errorf("load descriptors: %w", err)
		}
		spec.Enums = append(spec.Enums, set.Enums...)
	}

	var w io.Writer = c.App.Writer
	if out := c.String("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return completion.Generate(w, spec)
}
