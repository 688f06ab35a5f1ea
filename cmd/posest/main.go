package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/erazemk/posest/internal/config"
)

const (
	flagDB       = "db"
	flagLog      = "log"
	flagLogLevel = "log-level"
	flagAddr     = "addr"
	flagBasePath = "base-path"
	flagAdmin    = "user"
	flagUsername = "username"
	flagPassword = "password"
	flagRole     = "role"
)

func main() {
	conf, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not parse config: %v\n", err)
		os.Exit(1)
	}

	var closeLog func()

	app := &cli.App{
		Name:  "posest",
		Usage: "track personal possessions and periodic checkups",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagDB,
				Aliases: []string{"d"},
				Usage:   "SQLite database path",
				Value:   conf.Storage.Database.Path,
			},
			&cli.StringFlag{
				Name:    flagLog,
				Aliases: []string{"l"},
				Usage:   "log file path (stdout/stderr only when empty)",
				Value:   conf.Logger.File,
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "log level (debug, info, warn, error)",
				Value: slog.Level(conf.Logger.Level).String(),
			},
		},
		Before: func(ctx *cli.Context) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(ctx.String(flagLogLevel))); err != nil {
				return errors.Wrap(err, "invalid log level")
			}

			cleanup, err := setupLogger(level, ctx.String(flagLog))
			if err != nil {
				return errors.WithStack(err)
			}
			closeLog = cleanup
			return nil
		},
		After: func(ctx *cli.Context) error {
			if closeLog != nil {
				closeLog()
			}
			return nil
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(conf),
			initCommand(conf),
			userCommand(),
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}
		slog.Error("command failed", "error", err)
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
