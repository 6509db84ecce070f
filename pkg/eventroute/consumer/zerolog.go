package consumer

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
	"github.com/randalmurphal/eventroute/pkg/eventroute/config"
)

// Zerolog returns a callback that writes each event as a zerolog record.
// The message is the event name; tag, metadata and context are fields.
func Zerolog(logger zerolog.Logger) eventroute.Callback {
	return eventroute.Func(func(_ context.Context, evt eventroute.Event, ec eventroute.EventContext) error {
		logger.WithLevel(zerologLevel(evt.Level)).
			Str("tag", evt.Type).
			Dict("metadata", zerolog.Dict().Fields(map[string]any(evt.Metadata))).
			Dict("application", zerolog.Dict().Fields(map[string]any(ec.Application))).
			Dict("user", zerolog.Dict().Fields(map[string]any(ec.User))).
			Msg(evt.Name)
		return nil
	})
}

func zerologLevel(l eventroute.Level) zerolog.Level {
	switch l {
	case eventroute.LevelWarning:
		return zerolog.WarnLevel
	case eventroute.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// RotatingFile returns a size-rotated file writer for cfg.File.
func RotatingFile(cfg config.LogSettings) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// NewZerologLogger builds a zerolog.Logger for cfg. With no file configured
// it writes to stdout, or os.Stdout when stdout is nil. The returned closer
// releases the file, if any.
func NewZerologLogger(cfg config.LogSettings, stdout io.Writer) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		level = parsed
	}

	w := stdout
	if w == nil {
		w = os.Stdout
	}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file := RotatingFile(cfg)
		w, closer = file, file
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
