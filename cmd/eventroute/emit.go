package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
	"github.com/randalmurphal/eventroute/pkg/eventroute/consumer"
	"github.com/randalmurphal/eventroute/pkg/eventroute/setup"
)

type emitFlags struct {
	level string
	tag   string
	name  string
	event string
	meta  []string
}

func newEmitCmd(opts *options) *cobra.Command {
	f := &emitFlags{}

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Send one event to a zerolog consumer",
		Example: `  eventroute emit --tag user --name "Logged In" --meta method=sso
  eventroute emit -c app.yaml --level error --tag error --event ERROR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEmit(cmd, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.level, "level", "info", "Event level: info|warning|error")
	cmd.Flags().StringVar(&f.tag, "tag", "", "Event tag")
	cmd.Flags().StringVar(&f.name, "name", "", "Event display name")
	cmd.Flags().StringVar(&f.event, "event", "", "Event machine name, resolved through the catalog")
	cmd.Flags().StringSliceVar(&f.meta, "meta", nil, "Metadata as key=value, repeatable")
	_ = cmd.MarkFlagRequired("tag")
	cmd.MarkFlagsMutuallyExclusive("name", "event")
	return cmd
}

func runEmit(cmd *cobra.Command, opts *options, f *emitFlags) error {
	level, err := eventroute.ParseLevel(f.level)
	if err != nil {
		return err
	}
	metadata, err := parseMeta(f.meta)
	if err != nil {
		return err
	}

	settings, err := opts.loadSettings()
	if err != nil {
		return err
	}
	svc, ok := setup.Service(settings, eventroute.WithLogger(opts.routerLogger(cmd.ErrOrStderr())))
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "eventroute is disabled in config; nothing sent")
		return nil
	}

	ctx := cmd.Context()
	mon, _ := setup.ErrorMonitoring(ctx, svc, settings)
	if mon != nil {
		defer mon.Close()
	}

	name := f.name
	if f.event != "" {
		resolved, ok := svc.EventName(f.tag, f.event)
		if !ok {
			return fmt.Errorf("%w: %s.%s", eventroute.ErrUnknownEvent, f.tag, f.event)
		}
		name = resolved
	}
	if name == "" {
		return fmt.Errorf("one of --name or --event is required")
	}

	logger, closer, err := consumer.NewZerologLogger(settings.Log, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closer.Close()

	setup.RegisterContext(svc, setup.ApplicationContextID, func() (eventroute.Fields, error) {
		return eventroute.Fields{"source": "eventroute emit", "environment": svc.Environment()}, nil
	}, nil)

	if err := svc.Register("cli", consumer.Zerolog(logger), eventroute.Levels(), []string{f.tag}); err != nil {
		return err
	}

	if err := svc.Send(ctx, level, f.tag, name, metadata); err != nil {
		if mon != nil {
			_ = mon.Report(ctx, err)
		}
		return err
	}
	return nil
}

// parseMeta converts key=value pairs into Fields.
func parseMeta(pairs []string) (eventroute.Fields, error) {
	meta := make(eventroute.Fields, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --meta %q: want key=value", p)
		}
		meta[k] = v
	}
	return meta, nil
}
