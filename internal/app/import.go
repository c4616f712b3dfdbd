package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"msxcat/internal/importer"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type ImportCommand struct {
	baseRunner

	files      []string
	machine    string
	replaceAll bool
	skipAll    bool
}

func NewImportCommand() *ImportCommand { return &ImportCommand{} }

func (c *ImportCommand) Name() string { return "import" }

func (c *ImportCommand) Desc() string {
	return "Import blueMSX Launcher database files as collections"
}

func (c *ImportCommand) Init(f *pflag.FlagSet) {
	f.StringSliceVar(&c.files, "file", nil, "blueMSX Launcher database file, repeatable")
	f.StringVar(&c.machine, "machine", "", "Machine assigned to imported games, defaults from config")
	f.BoolVar(&c.replaceAll, "replace-all", false, "Replace conflicting collections without prompting")
	f.BoolVar(&c.skipAll, "skip-all", false, "Skip conflicting collections without prompting")
}

func (c *ImportCommand) PreRun(ctx context.Context) error {
	if len(c.files) == 0 {
		return errors.New("import requires at least one --file")
	}
	if c.replaceAll && c.skipAll {
		return errors.New("--replace-all and --skip-all are mutually exclusive")
	}
	return nil
}

func (c *ImportCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	machine := c.machine
	if machine == "" {
		machine = env.Config.DefaultMachine
	}

	var decider importer.ActionDecider
	switch {
	case c.replaceAll:
		decider = fixedDecider(importer.ActionYesAll)
	case c.skipAll:
		decider = fixedDecider(importer.ActionNoAll)
	default:
		decider = &consoleDecider{in: os.Stdin, out: os.Stdout}
	}

	imp := importer.New(env.Store, env.Builder, env.ExtraData, machine)
	imported, err := imp.ImportDatabases(ctx, c.files, decider)
	if err != nil {
		return err
	}

	logutil.GetLogger(ctx).Info("import completed",
		zap.Int("collections", len(imported)),
		zap.Strings("names", imported),
	)
	return nil
}

// fixedDecider answers every conflict with the same action.
type fixedDecider importer.Action

func (d fixedDecider) Decide(string) importer.Action { return importer.Action(d) }

// consoleDecider prompts on the terminal when an import target already
// exists.
type consoleDecider struct {
	in  io.Reader
	out io.Writer
}

func (d *consoleDecider) Decide(database string) importer.Action {
	reader := bufio.NewReader(d.in)
	for {
		fmt.Fprintf(d.out, "collection %q already exists, replace it? [y]es/[a]ll/[n]o/[s]kip all/[c]ancel: ", database)
		line, err := reader.ReadString('\n')
		if err != nil {
			return importer.ActionCancel
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return importer.ActionYes
		case "a", "all":
			return importer.ActionYesAll
		case "n", "no":
			return importer.ActionNo
		case "s", "skip all":
			return importer.ActionNoAll
		case "c", "cancel":
			return importer.ActionCancel
		}
	}
}

func init() {
	RegisterRunner("import", func() IRunner { return NewImportCommand() })
}
