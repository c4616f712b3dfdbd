package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

type favoriteArgs struct {
	database string
	game     string
}

func (a *favoriteArgs) Init(f *pflag.FlagSet) {
	f.StringVar(&a.database, "db", "", "Collection name")
	f.StringVar(&a.game, "name", "", "Game name")
}

func (a *favoriteArgs) validate() error {
	if err := requireDB(a.database); err != nil {
		return err
	}
	if a.game == "" {
		return errors.New("a game name is required, pass --name")
	}
	return nil
}

type AddFavoriteCommand struct {
	baseRunner
	favoriteArgs
}

func NewAddFavoriteCommand() *AddFavoriteCommand { return &AddFavoriteCommand{} }

func (c *AddFavoriteCommand) Name() string { return "add-favorite" }
func (c *AddFavoriteCommand) Desc() string { return "Mark a stored game as favorite" }

func (c *AddFavoriteCommand) Init(f *pflag.FlagSet) { c.favoriteArgs.Init(f) }

func (c *AddFavoriteCommand) PreRun(ctx context.Context) error { return c.validate() }

func (c *AddFavoriteCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	return env.Store.AddFavorite(ctx, c.game, c.database)
}

type DeleteFavoriteCommand struct {
	baseRunner
	favoriteArgs
}

func NewDeleteFavoriteCommand() *DeleteFavoriteCommand { return &DeleteFavoriteCommand{} }

func (c *DeleteFavoriteCommand) Name() string { return "delete-favorite" }
func (c *DeleteFavoriteCommand) Desc() string { return "Remove a game from the favorites" }

func (c *DeleteFavoriteCommand) Init(f *pflag.FlagSet) { c.favoriteArgs.Init(f) }

func (c *DeleteFavoriteCommand) PreRun(ctx context.Context) error { return c.validate() }

func (c *DeleteFavoriteCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	return env.Store.DeleteFavorite(ctx, c.game, c.database)
}

type ListFavoritesCommand struct {
	baseRunner
}

func NewListFavoritesCommand() *ListFavoritesCommand { return &ListFavoritesCommand{} }

func (c *ListFavoritesCommand) Name() string { return "favorites" }
func (c *ListFavoritesCommand) Desc() string { return "List favorites across all collections" }

func (c *ListFavoritesCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	favorites, err := env.Store.GetFavorites(ctx)
	if err != nil {
		return err
	}
	for _, favorite := range favorites {
		fmt.Printf("%s\t%s\n", favorite.GameName, favorite.Database)
	}
	return nil
}

func init() {
	RegisterRunner("add-favorite", func() IRunner { return NewAddFavoriteCommand() })
	RegisterRunner("delete-favorite", func() IRunner { return NewDeleteFavoriteCommand() })
	RegisterRunner("favorites", func() IRunner { return NewListFavoritesCommand() })
}
