package app

import (
	"context"

	"github.com/spf13/pflag"
)

// IRunner represents a runnable command in the application layer.
type IRunner interface {
	Name() string
	Desc() string
	Init(f *pflag.FlagSet)
	PreRun(ctx context.Context) error
	Run(ctx context.Context) error
	PostRun(ctx context.Context) error
}

// baseRunner provides no-op lifecycle hooks for commands that only need Run.
type baseRunner struct{}

func (baseRunner) Init(f *pflag.FlagSet)             {}
func (baseRunner) PreRun(ctx context.Context) error  { return nil }
func (baseRunner) PostRun(ctx context.Context) error { return nil }
