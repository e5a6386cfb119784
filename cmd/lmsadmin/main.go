// Command lmsadmin toggles user accounts from the command line.
//
//	lmsadmin deactivate <username>
//	lmsadmin activate <username>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lms-portal/internal/config"
	"lms-portal/internal/database"
	"lms-portal/internal/logger"
	"lms-portal/internal/store"
)

const usage = "usage: lmsadmin activate|deactivate <username>"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	active, username, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	db, err := database.Open(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}

	if err := store.NewUserStore(db).SetActive(ctx, username, active); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("no user named %q", username)
		}
		return err
	}

	log.Info().Str("username", username).Bool("active", active).Msg("user updated")
	return nil
}

func parseArgs(args []string) (active bool, username string, err error) {
	if len(args) != 2 || args[1] == "" {
		return false, "", errors.New(usage)
	}
	switch args[0] {
	case "activate":
		return true, args[1], nil
	case "deactivate":
		return false, args[1], nil
	default:
		return false, "", errors.New(usage)
	}
}
