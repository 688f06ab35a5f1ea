package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/erazemk/posest/internal/auth"
	"github.com/erazemk/posest/internal/db"
	"github.com/erazemk/posest/internal/model"
	"github.com/erazemk/posest/internal/store"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage user accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "add a user (a random password is generated when none is given)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagUsername,
						Aliases:  []string{"n"},
						Usage:    "login name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    flagPassword,
						Aliases: []string{"p"},
						Usage:   "password",
						EnvVars: []string{"POSEST_USER_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  flagRole,
						Usage: "role (admin or user)",
						Value: model.RoleUser,
					},
				},
				Action: createUser,
			},
		},
	}
}

func createUser(ctx *cli.Context) error {
	dbPath := ctx.String(flagDB)
	username := ctx.String(flagUsername)
	role := ctx.String(flagRole)

	if !model.ValidRole(role) {
		return errors.Errorf("invalid role %q", role)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return errors.Wrapf(err, "database %s is not initialized", dbPath)
	}

	password := ctx.String(flagPassword)
	generated := password == ""
	if generated {
		var err error
		if password, err = auth.GeneratePassword(16); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := model.ValidatePassword(password); err != nil {
		return errors.WithStack(err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return errors.Wrap(err, "could not open database")
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return errors.WithStack(err)
	}

	existing, err := store.GetUserByUsername(ctx.Context, database, username)
	if err != nil {
		return errors.WithStack(err)
	}
	if existing != nil {
		return errors.Errorf("user %q already exists", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := store.CreateUser(ctx.Context, database, username, hash, role)
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Printf("User created: %s (id %d, role %s)\n", user.Username, user.ID, user.Role)
	if generated {
		fmt.Printf("  Password: %s\n", password)
	}
	return nil
}
