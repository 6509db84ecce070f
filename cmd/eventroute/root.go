package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventroute/pkg/eventroute/config"
)

// options holds persistent flag values.
type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "eventroute",
		Short:         "Inspect the event catalog and emit events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Router log level: debug|info|warn|error")

	root.AddCommand(newCatalogCmd(opts), newEmitCmd(opts))
	return root
}

// loadSettings reads the config file, or returns enabled development
// settings when none is given.
func (o *options) loadSettings() (config.Settings, error) {
	if o.configPath == "" {
		return config.Settings{Enabled: true, ErrorsEnabled: true, Environment: "development"}, nil
	}
	return config.Load(o.configPath)
}

// routerLogger returns the slog logger handed to the router.
func (o *options) routerLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
