package app

import (
	"context"
	"errors"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type UpdateMachineCommand struct {
	baseRunner

	to          string
	from        string
	database    string
	backupFirst bool
}

func NewUpdateMachineCommand() *UpdateMachineCommand { return &UpdateMachineCommand{} }

func (c *UpdateMachineCommand) Name() string { return "update-machine" }

func (c *UpdateMachineCommand) Desc() string {
	return "Rewrite the machine of stored games, optionally scoped and backed up"
}

func (c *UpdateMachineCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Machine to assign")
	f.StringVar(&c.from, "from", "", "Only rewrite games currently on this machine")
	f.StringVar(&c.database, "db", "", "Only rewrite games of this collection")
	f.BoolVar(&c.backupFirst, "backup", false, "Back up every affected collection first")
}

func (c *UpdateMachineCommand) PreRun(ctx context.Context) error {
	if c.to == "" {
		return errors.New("update-machine requires --to")
	}
	return nil
}

func (c *UpdateMachineCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	updated, err := env.Store.UpdateMachine(ctx, c.to, c.from, c.database, c.backupFirst)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("machine update completed",
		zap.String("to", c.to),
		zap.Int64("updated", updated),
	)
	return nil
}

func init() {
	RegisterRunner("update-machine", func() IRunner { return NewUpdateMachineCommand() })
}
