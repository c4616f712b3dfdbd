package app

import (
	"context"
	"errors"

	"msxcat/internal/scan"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type ScanCommand struct {
	baseRunner

	paths       []string
	database    string
	newDatabase bool
	appendGames bool
	backupFirst bool
	subdirs     bool
	machine     string

	searchROM       bool
	searchDisk      bool
	searchTape      bool
	searchHarddisk  bool
	searchLaserdisc bool
	nameFromCatalog bool
}

func NewScanCommand() *ScanCommand { return &ScanCommand{} }

func (c *ScanCommand) Name() string { return "scan" }

func (c *ScanCommand) Desc() string {
	return "Scan directories for game media and fill a collection"
}

func (c *ScanCommand) Init(f *pflag.FlagSet) {
	f.StringSliceVar(&c.paths, "path", nil, "File or directory to scan, repeatable")
	f.StringVar(&c.database, "db", "", "Target collection name")
	f.BoolVar(&c.newDatabase, "new-db", false, "Create the collection instead of filling an existing one")
	f.BoolVar(&c.appendGames, "append", false, "Keep existing games and add to them")
	f.BoolVar(&c.backupFirst, "backup", false, "Back up the collection before replacing its games")
	f.BoolVar(&c.subdirs, "subdirs", false, "Traverse subdirectories")
	f.StringVar(&c.machine, "machine", "", "Machine assigned to found games, defaults from config")
	f.BoolVar(&c.searchROM, "roms", true, "Pick up ROM images")
	f.BoolVar(&c.searchDisk, "disks", true, "Pick up disk images")
	f.BoolVar(&c.searchTape, "tapes", true, "Pick up tape images")
	f.BoolVar(&c.searchHarddisk, "harddisks", false, "Pick up hard disk images")
	f.BoolVar(&c.searchLaserdisc, "laserdiscs", false, "Pick up laserdisc images")
	f.BoolVar(&c.nameFromCatalog, "catalog-names", false, "Name games from the software database instead of the file name")
}

func (c *ScanCommand) PreRun(ctx context.Context) error {
	if len(c.paths) == 0 {
		return errors.New("scan requires at least one --path")
	}
	if c.database == "" {
		return errors.New("scan requires --db")
	}
	return nil
}

func (c *ScanCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	machine := c.machine
	if machine == "" {
		machine = env.Config.DefaultMachine
	}

	scanner := scan.New(env.Store, env.Catalog, env.Builder, env.ExtraData)
	count, err := scanner.Scan(ctx, scan.Request{
		Paths:           c.paths,
		TraverseSubDirs: c.subdirs,
		Database:        c.database,
		NewDatabase:     c.newDatabase,
		Append:          c.appendGames,
		BackupFirst:     c.backupFirst,
		Machine:         machine,
		SearchROM:       c.searchROM,
		SearchDisk:      c.searchDisk,
		SearchTape:      c.searchTape,
		SearchHarddisk:  c.searchHarddisk,
		SearchLaserdisc: c.searchLaserdisc,
		NameFromCatalog: c.nameFromCatalog,
	})
	if err != nil {
		return err
	}

	logutil.GetLogger(ctx).Info("scan completed",
		zap.String("db", c.database),
		zap.Int("added", count),
	)
	return nil
}

func init() {
	RegisterRunner("scan", func() IRunner { return NewScanCommand() })
}
