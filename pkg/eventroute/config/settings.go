package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SectionKey is the top-level key holding the event router settings.
const SectionKey = "eventroute"

// ErrInvalidSettings wraps validation failures from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid eventroute settings")

// Settings is the bootstrap configuration of the event router.
type Settings struct {
	// Enabled turns the whole service on. When false, bootstrap does nothing.
	Enabled bool

	// ErrorsEnabled wires the error monitor independently of Enabled.
	ErrorsEnabled bool

	// Testing keeps the error monitor from installing its hooks.
	Testing bool

	// Environment is the name consumers are gated against.
	Environment string `validate:"required_if=Enabled true"`

	// Events seeds the event catalog: tag -> machine name -> display name.
	Events map[string]map[string]string `validate:"dive,keys,required,endkeys,dive,keys,required,endkeys,required"`

	// Log configures the file sink used by the command-line tool.
	Log LogSettings
}

// LogSettings configures a rotating log file.
type LogSettings struct {
	// File is the log file path. Empty means stdout.
	File       string
	Level      string `validate:"omitempty,oneof=debug info warn error"`
	MaxSizeMB  int    `validate:"gte=0"`
	MaxBackups int    `validate:"gte=0"`
	MaxAgeDays int    `validate:"gte=0"`
	Compress   bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SettingsFrom decodes the "eventroute" section of cfg.
// A missing section yields zero Settings, which is inert and valid.
//
// Example configuration:
//
//	eventroute:
//	  enabled: true
//	  errorsEnabled: true
//	  environment: production
//	  events:
//	    user:
//	      LOGGED_IN: Logged In
func SettingsFrom(cfg Config) Settings {
	if !cfg.Has(SectionKey) {
		return Settings{}
	}
	sec := cfg.Section(SectionKey)

	s := Settings{
		Enabled:       sec.Bool("enabled", false),
		ErrorsEnabled: sec.Bool("errorsEnabled", false),
		Testing:       sec.Bool("testing", false),
		Environment:   sec.String("environment", ""),
		Events:        eventsFrom(sec.Map("events")),
	}

	logSec := sec.Section("log")
	s.Log = LogSettings{
		File:       logSec.String("file", ""),
		Level:      logSec.String("level", ""),
		MaxSizeMB:  logSec.Int("maxSizeMB", 0),
		MaxBackups: logSec.Int("maxBackups", 0),
		MaxAgeDays: logSec.Int("maxAgeDays", 0),
		Compress:   logSec.Bool("compress", false),
	}
	return s
}

// Load reads a config file and returns its validated Settings.
func Load(path string) (Settings, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := SettingsFrom(cfg)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks field constraints. Disabled settings are always valid.
func (s Settings) Validate() error {
	if !s.Enabled && !s.ErrorsEnabled {
		return nil
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// eventsFrom converts a decoded catalog section. Non-string names are
// formatted with fmt.Sprint; non-map tag entries are dropped.
func eventsFrom(m map[string]any) map[string]map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]map[string]string, len(m))
	for tag, v := range m {
		names := asMap(v)
		if names == nil {
			continue
		}
		entry := make(map[string]string, len(names))
		for machine, name := range names {
			if s, ok := name.(string); ok {
				entry[machine] = s
			} else {
				entry[machine] = fmt.Sprint(name)
			}
		}
		out[tag] = entry
	}
	return out
}
