package config

import (
	"log/slog"

	"github.com/pkg/errors"
)

type Logger struct {
	Level LogLevel `env:"LEVEL" envDefault:"info"`
	File  string   `env:"FILE,expand"`
}

// LogLevel is a slog level parsed from its name.
type LogLevel slog.Level

func (l *LogLevel) UnmarshalText(text []byte) error {
	var level slog.Level
	if err := level.UnmarshalText(text); err != nil {
		return errors.Wrapf(err, "invalid log level %q", string(text))
	}
	*l = LogLevel(level)
	return nil
}
