package app

import (
	"context"
	"errors"

	"msxcat/internal/builder"
	"msxcat/internal/model"

	"github.com/spf13/pflag"
)

// gameFields are the manually editable attributes shared by add-game and
// update-game.
type gameFields struct {
	name         string
	info         string
	machine      string
	romA         string
	romB         string
	extensionRom string
	diskA        string
	diskB        string
	tape         string
	harddisk     string
	laserdisc    string
	script       string
}

func (g *gameFields) Init(f *pflag.FlagSet) {
	f.StringVar(&g.name, "name", "", "Game name")
	f.StringVar(&g.info, "info", "", "Info file or link")
	f.StringVar(&g.machine, "machine", "", "Machine to launch the game on, defaults from config")
	f.StringVar(&g.romA, "rom-a", "", "ROM image in slot A")
	f.StringVar(&g.romB, "rom-b", "", "ROM image in slot B")
	f.StringVar(&g.extensionRom, "extension-rom", "", "Extension ROM")
	f.StringVar(&g.diskA, "disk-a", "", "Disk image in drive A")
	f.StringVar(&g.diskB, "disk-b", "", "Disk image in drive B")
	f.StringVar(&g.tape, "tape", "", "Tape image")
	f.StringVar(&g.harddisk, "harddisk", "", "Hard disk image")
	f.StringVar(&g.laserdisc, "laserdisc", "", "Laserdisc image")
	f.StringVar(&g.script, "script", "", "Tcl launch script")
}

func (g *gameFields) userInput(defaultMachine string) builder.UserInput {
	machine := g.machine
	if machine == "" {
		machine = defaultMachine
	}
	return builder.UserInput{
		Name:         g.name,
		Info:         g.info,
		Machine:      machine,
		RomA:         g.romA,
		RomB:         g.romB,
		ExtensionRom: g.extensionRom,
		DiskA:        g.diskA,
		DiskB:        g.diskB,
		Tape:         g.tape,
		Harddisk:     g.harddisk,
		Laserdisc:    g.laserdisc,
		Script:       g.script,
	}
}

func buildFromUserInput(env *Env, fields *gameFields) (*model.Game, error) {
	extraDataMap, err := loadExtraData(env)
	if err != nil {
		return nil, err
	}
	game, ok := env.Builder.ForUserInput(fields.userInput(env.Config.DefaultMachine), extraDataMap)
	if !ok {
		return nil, errors.New("the given fields identify no game, set --name or a media file")
	}
	return game, nil
}

type AddGameCommand struct {
	baseRunner
	gameFields
	database string
}

func NewAddGameCommand() *AddGameCommand { return &AddGameCommand{} }

func (c *AddGameCommand) Name() string { return "add-game" }
func (c *AddGameCommand) Desc() string { return "Add a single game to a collection" }

func (c *AddGameCommand) Init(f *pflag.FlagSet) {
	c.gameFields.Init(f)
	f.StringVar(&c.database, "db", "", "Collection name")
}

func (c *AddGameCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *AddGameCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	game, err := buildFromUserInput(env, &c.gameFields)
	if err != nil {
		return err
	}
	return env.Store.SaveGame(ctx, game, c.database)
}

type UpdateGameCommand struct {
	baseRunner
	gameFields
	database string
	oldName  string
}

func NewUpdateGameCommand() *UpdateGameCommand { return &UpdateGameCommand{} }

func (c *UpdateGameCommand) Name() string { return "update-game" }
func (c *UpdateGameCommand) Desc() string { return "Replace a stored game's fields, keeping its favorite links" }

func (c *UpdateGameCommand) Init(f *pflag.FlagSet) {
	c.gameFields.Init(f)
	f.StringVar(&c.database, "db", "", "Collection name")
	f.StringVar(&c.oldName, "old-name", "", "Current name of the game to update")
}

func (c *UpdateGameCommand) PreRun(ctx context.Context) error {
	if err := requireDB(c.database); err != nil {
		return err
	}
	if c.oldName == "" {
		return errors.New("update-game requires --old-name")
	}
	return nil
}

func (c *UpdateGameCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	newGame, err := buildFromUserInput(env, &c.gameFields)
	if err != nil {
		return err
	}
	oldGame, ok := model.NewGame(model.GameParams{Name: c.oldName})
	if !ok {
		return errors.New("update-game requires --old-name")
	}
	return env.Store.UpdateGame(ctx, oldGame, newGame, c.database)
}

// loadExtraData reads the overlay, treating a missing file as an empty
// overlay.
func loadExtraData(env *Env) (map[string]model.ExtraData, error) {
	extraDataMap, err := env.ExtraData.ExtraData()
	if err != nil {
		if isMissingOverlay(err) {
			return nil, nil
		}
		return nil, err
	}
	return extraDataMap, nil
}

func init() {
	RegisterRunner("add-game", func() IRunner { return NewAddGameCommand() })
	RegisterRunner("update-game", func() IRunner { return NewUpdateGameCommand() })
}
