package app

import (
	"context"
	"errors"
	"fmt"

	"msxcat/internal/fingerprint"

	"github.com/spf13/pflag"
)

type GameInfoCommand struct {
	baseRunner

	file     string
	sha1Code string
}

func NewGameInfoCommand() *GameInfoCommand { return &GameInfoCommand{} }

func (c *GameInfoCommand) Name() string { return "game-info" }

func (c *GameInfoCommand) Desc() string {
	return "Look up a media file or hash in the openMSX software database"
}

func (c *GameInfoCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Media file to look up")
	f.StringVar(&c.sha1Code, "sha1", "", "Content hash to look up")
}

func (c *GameInfoCommand) PreRun(ctx context.Context) error {
	if c.file == "" && c.sha1Code == "" {
		return errors.New("game-info requires --file or --sha1")
	}
	return nil
}

func (c *GameInfoCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}

	sha1Code := c.sha1Code
	if sha1Code == "" {
		fp, ok := fingerprint.File(c.file)
		if !ok {
			return fmt.Errorf("cannot fingerprint %s", c.file)
		}
		sha1Code = fp.SHA1
	}

	info, err := env.Catalog.GameInfo(sha1Code)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("not in the software database")
		return nil
	}

	fmt.Printf("title:   %s\n", info.Title)
	fmt.Printf("system:  %s\n", info.System)
	fmt.Printf("company: %s\n", info.Company)
	fmt.Printf("year:    %s\n", info.Year)
	fmt.Printf("country: %s\n", info.Country)
	fmt.Printf("mapper:  %s\n", info.Mapper())
	if info.Remark != "" {
		fmt.Printf("remark:  %s\n", info.Remark)
	}

	dumps, err := env.Catalog.DumpCodes(sha1Code)
	if err != nil {
		return err
	}
	fmt.Printf("dumps:   %d\n", len(dumps))
	return nil
}

func init() {
	RegisterRunner("game-info", func() IRunner { return NewGameInfoCommand() })
}
