package consumer

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
)

// Slog returns a callback that writes each event as a structured slog record.
// Levels map to Info, Warn and Error. A nil logger uses slog.Default().
func Slog(logger *slog.Logger) eventroute.Callback {
	if logger == nil {
		logger = slog.Default()
	}
	return eventroute.Func(func(ctx context.Context, evt eventroute.Event, ec eventroute.EventContext) error {
		logger.LogAttrs(ctx, slogLevel(evt.Level), evt.Name,
			slog.String("tag", evt.Type),
			slog.String("level", evt.Level.String()),
			fieldsGroup("metadata", evt.Metadata),
			fieldsGroup("application", ec.Application),
			fieldsGroup("user", ec.User),
		)
		return nil
	})
}

func slogLevel(l eventroute.Level) slog.Level {
	switch l {
	case eventroute.LevelWarning:
		return slog.LevelWarn
	case eventroute.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fieldsGroup renders fields as a slog group with sorted keys.
func fieldsGroup(name string, f eventroute.Fields) slog.Attr {
	attrs := make([]any, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		attrs = append(attrs, slog.Any(k, f[k]))
	}
	return slog.Group(name, attrs...)
}
