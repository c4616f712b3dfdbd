package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

const defaultSearchLimit = 50

type SearchCommand struct {
	baseRunner

	text string
	max  int
}

func NewSearchCommand() *SearchCommand { return &SearchCommand{} }

func (c *SearchCommand) Name() string { return "search" }

func (c *SearchCommand) Desc() string {
	return "Find games across collections by name fragment or content hash"
}

func (c *SearchCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.text, "text", "", "Name fragment or sha1 to look for")
	f.IntVar(&c.max, "max", defaultSearchLimit, "Maximum number of matches")
}

func (c *SearchCommand) PreRun(ctx context.Context) error {
	if c.text == "" {
		return errors.New("search requires --text")
	}
	return nil
}

func (c *SearchCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	matches, err := env.Store.Find(ctx, c.text, c.max)
	if err != nil {
		return err
	}
	for _, match := range matches {
		fmt.Printf("%s\t%s\n", match.GameName, match.Database)
	}
	return nil
}

func init() {
	RegisterRunner("search", func() IRunner { return NewSearchCommand() })
}
