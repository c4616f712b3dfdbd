package app

import (
	"context"
	"errors"
	"fmt"

	"msxcat/internal/model"

	"github.com/spf13/pflag"
)

type GamesCommand struct {
	baseRunner
	database string
	verbose  bool
}

func NewGamesCommand() *GamesCommand { return &GamesCommand{} }

func (c *GamesCommand) Name() string { return "games" }
func (c *GamesCommand) Desc() string { return "List the games of a collection" }

func (c *GamesCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
	f.BoolVar(&c.verbose, "verbose", false, "Print machine, media file and content hash too")
}

func (c *GamesCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *GamesCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	games, err := env.Store.GetGames(ctx, c.database)
	if err != nil {
		return err
	}
	for _, game := range games {
		if c.verbose {
			fmt.Printf("%s\t%s\t%s\t%s\n", game.Name, game.Machine, game.MainFile(), game.SHA1)
			continue
		}
		fmt.Println(game.Name)
	}
	return nil
}

type DeleteGameCommand struct {
	baseRunner
	database string
	games    []string
}

func NewDeleteGameCommand() *DeleteGameCommand { return &DeleteGameCommand{} }

func (c *DeleteGameCommand) Name() string { return "delete-game" }
func (c *DeleteGameCommand) Desc() string { return "Delete games from a collection by name" }

func (c *DeleteGameCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
	f.StringSliceVar(&c.games, "name", nil, "Game name, repeatable")
}

func (c *DeleteGameCommand) PreRun(ctx context.Context) error {
	if err := requireDB(c.database); err != nil {
		return err
	}
	if len(c.games) == 0 {
		return errors.New("delete-game requires at least one --name")
	}
	return nil
}

func (c *DeleteGameCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	games := make([]*model.Game, 0, len(c.games))
	for _, name := range c.games {
		game, ok := model.NewGame(model.GameParams{Name: name})
		if !ok {
			continue
		}
		games = append(games, game)
	}
	return env.Store.DeleteGames(ctx, games, c.database)
}

type UpdateExtraDataCommand struct {
	baseRunner
}

func NewUpdateExtraDataCommand() *UpdateExtraDataCommand { return &UpdateExtraDataCommand{} }

func (c *UpdateExtraDataCommand) Name() string { return "update-extra-data" }

func (c *UpdateExtraDataCommand) Desc() string {
	return "Refresh every stored game from the extra-data overlay"
}

func (c *UpdateExtraDataCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	extraDataMap, err := env.ExtraData.ExtraData()
	if err != nil {
		return err
	}
	updated, err := env.Store.UpdateGameExtraData(ctx, env.Builder, extraDataMap)
	if err != nil {
		return err
	}
	fmt.Printf("updated %d games\n", updated)
	return nil
}

type ExtraDataVersionCommand struct {
	baseRunner
}

func NewExtraDataVersionCommand() *ExtraDataVersionCommand { return &ExtraDataVersionCommand{} }

func (c *ExtraDataVersionCommand) Name() string { return "extra-data-version" }
func (c *ExtraDataVersionCommand) Desc() string { return "Print the extra-data overlay version" }

func (c *ExtraDataVersionCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	version, err := env.ExtraData.FileVersion()
	if err != nil {
		return err
	}
	fmt.Println(version)
	return nil
}

func init() {
	RegisterRunner("games", func() IRunner { return NewGamesCommand() })
	RegisterRunner("delete-game", func() IRunner { return NewDeleteGameCommand() })
	RegisterRunner("update-extra-data", func() IRunner { return NewUpdateExtraDataCommand() })
	RegisterRunner("extra-data-version", func() IRunner { return NewExtraDataVersionCommand() })
}
