package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

type CreateDBCommand struct {
	baseRunner
	database string
}

func NewCreateDBCommand() *CreateDBCommand { return &CreateDBCommand{} }

func (c *CreateDBCommand) Name() string { return "create-db" }
func (c *CreateDBCommand) Desc() string { return "Create an empty game collection" }

func (c *CreateDBCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
}

func (c *CreateDBCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *CreateDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	return env.Store.CreateDatabase(ctx, c.database)
}

type DeleteDBCommand struct {
	baseRunner
	database string
}

func NewDeleteDBCommand() *DeleteDBCommand { return &DeleteDBCommand{} }

func (c *DeleteDBCommand) Name() string { return "delete-db" }
func (c *DeleteDBCommand) Desc() string { return "Delete a collection with its games, favorites and backups" }

func (c *DeleteDBCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
}

func (c *DeleteDBCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *DeleteDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	return env.Store.DeleteDatabase(ctx, c.database)
}

type RenameDBCommand struct {
	baseRunner
	database string
	newName  string
}

func NewRenameDBCommand() *RenameDBCommand { return &RenameDBCommand{} }

func (c *RenameDBCommand) Name() string { return "rename-db" }
func (c *RenameDBCommand) Desc() string { return "Rename a collection" }

func (c *RenameDBCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Current collection name")
	f.StringVar(&c.newName, "to", "", "New collection name")
}

func (c *RenameDBCommand) PreRun(ctx context.Context) error {
	if err := requireDB(c.database); err != nil {
		return err
	}
	if c.newName == "" {
		return errors.New("rename-db requires --to")
	}
	return nil
}

func (c *RenameDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	return env.Store.RenameDatabase(ctx, c.database, c.newName)
}

type ListDBCommand struct {
	baseRunner
}

func NewListDBCommand() *ListDBCommand { return &ListDBCommand{} }

func (c *ListDBCommand) Name() string { return "databases" }
func (c *ListDBCommand) Desc() string { return "List all collections" }

func (c *ListDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	databases, err := env.Store.GetDatabases(ctx)
	if err != nil {
		return err
	}
	for _, database := range databases {
		fmt.Println(database)
	}
	return nil
}

func requireDB(database string) error {
	if database == "" {
		return errors.New("a collection name is required, pass --db")
	}
	return nil
}

func init() {
	RegisterRunner("create-db", func() IRunner { return NewCreateDBCommand() })
	RegisterRunner("delete-db", func() IRunner { return NewDeleteDBCommand() })
	RegisterRunner("rename-db", func() IRunner { return NewRenameDBCommand() })
	RegisterRunner("databases", func() IRunner { return NewListDBCommand() })
}
