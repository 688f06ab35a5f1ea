package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/erazemk/posest/internal/auth"
	"github.com/erazemk/posest/internal/config"
	"github.com/erazemk/posest/internal/db"
	"github.com/erazemk/posest/internal/model"
	"github.com/erazemk/posest/internal/store"
)

func initCommand(conf *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "create the database and an admin account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAdmin,
				Aliases: []string{"u"},
				Usage:   "admin username",
				Value:   conf.Auth.AdminUsername,
			},
		},
		Action: func(ctx *cli.Context) error {
			dbPath := ctx.String(flagDB)
			if _, err := os.Stat(dbPath); err == nil {
				return errors.Errorf("database %s already exists", dbPath)
			}
			return initDatabase(dbPath, ctx.String(flagAdmin))
		},
	}
}

// initDatabase creates a new database with the schema and an admin user, and
// prints the generated admin password.
func initDatabase(path, adminUsername string) error {
	password, err := createDatabase(path, adminUsername)
	if err != nil {
		os.Remove(path)
		return errors.Wrap(err, "could not initialize database")
	}

	printInitResult(path, adminUsername, password)
	fmt.Println()
	return nil
}

func createDatabase(path, adminUsername string) (string, error) {
	database, err := db.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return "", fmt.Errorf("ensuring schema: %w", err)
	}

	password, err := auth.GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	if _, err := store.CreateUser(context.Background(), database, adminUsername, hash, model.RoleAdmin); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}

	return password, nil
}

// printInitResult prints the database initialization result to stdout.
func printInitResult(dbPath, username, password string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println("Schema initialized.")
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("The admin can change it after logging in.")
}
