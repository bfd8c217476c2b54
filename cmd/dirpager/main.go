// Package main is the entry point for the dirpager CLI and server.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dirpager",
		Short: "Page through directory listings, directories first",
		Long: `dirpager lists the immediate children of a directory one page at a time.
Progress lives in an opaque cursor token returned with every page, so no
state is kept between calls.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newLsCmd())
	return root
}

// newLogger builds a console zap logger at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
