package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"msxcat/internal/model"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type BackupDBCommand struct {
	baseRunner
	database string
}

func NewBackupDBCommand() *BackupDBCommand { return &BackupDBCommand{} }

func (c *BackupDBCommand) Name() string { return "backup-db" }
func (c *BackupDBCommand) Desc() string { return "Snapshot a collection's games" }

func (c *BackupDBCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
}

func (c *BackupDBCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *BackupDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	backup, err := env.Store.BackupDatabase(ctx, c.database)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("backup created",
		zap.String("db", backup.Database),
		zap.Time("timestamp", backup.Timestamp),
	)
	return nil
}

type RestoreDBCommand struct {
	baseRunner
	database  string
	timestamp string
}

func NewRestoreDBCommand() *RestoreDBCommand { return &RestoreDBCommand{} }

func (c *RestoreDBCommand) Name() string { return "restore-db" }
func (c *RestoreDBCommand) Desc() string { return "Replace a collection's games with a backup snapshot" }

func (c *RestoreDBCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
	f.StringVar(&c.timestamp, "time", "", "Backup timestamp as shown by list-backups")
}

func (c *RestoreDBCommand) PreRun(ctx context.Context) error {
	if err := requireDB(c.database); err != nil {
		return err
	}
	if c.timestamp == "" {
		return errors.New("a backup timestamp is required, pass --time")
	}
	return nil
}

func (c *RestoreDBCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	backup, err := c.backup()
	if err != nil {
		return err
	}
	return env.Store.RestoreBackup(ctx, backup)
}

func (c *RestoreDBCommand) backup() (model.DatabaseBackup, error) {
	timestamp, err := time.Parse(time.RFC3339Nano, c.timestamp)
	if err != nil {
		return model.DatabaseBackup{}, fmt.Errorf("parse backup timestamp: %w", err)
	}
	return model.DatabaseBackup{Database: c.database, Timestamp: timestamp}, nil
}

type DeleteBackupCommand struct {
	RestoreDBCommand
}

func NewDeleteBackupCommand() *DeleteBackupCommand { return &DeleteBackupCommand{} }

func (c *DeleteBackupCommand) Name() string { return "delete-backup" }
func (c *DeleteBackupCommand) Desc() string { return "Delete one backup snapshot" }

func (c *DeleteBackupCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	backup, err := c.backup()
	if err != nil {
		return err
	}
	return env.Store.DeleteBackup(ctx, backup)
}

type ListBackupsCommand struct {
	baseRunner
	database string
}

func NewListBackupsCommand() *ListBackupsCommand { return &ListBackupsCommand{} }

func (c *ListBackupsCommand) Name() string { return "list-backups" }
func (c *ListBackupsCommand) Desc() string { return "List a collection's backup snapshots" }

func (c *ListBackupsCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.database, "db", "", "Collection name")
}

func (c *ListBackupsCommand) PreRun(ctx context.Context) error {
	return requireDB(c.database)
}

func (c *ListBackupsCommand) Run(ctx context.Context) error {
	env, err := requireEnv()
	if err != nil {
		return err
	}
	backups, err := env.Store.GetBackups(ctx, c.database)
	if err != nil {
		return err
	}
	for _, backup := range backups {
		fmt.Println(backup.Timestamp.Format(time.RFC3339Nano))
	}
	return nil
}

func init() {
	RegisterRunner("backup-db", func() IRunner { return NewBackupDBCommand() })
	RegisterRunner("restore-db", func() IRunner { return NewRestoreDBCommand() })
	RegisterRunner("delete-backup", func() IRunner { return NewDeleteBackupCommand() })
	RegisterRunner("list-backups", func() IRunner { return NewListBackupsCommand() })
}
