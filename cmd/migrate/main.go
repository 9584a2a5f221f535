// Package main applies or rolls back the database schema migrations.
//
// Usage:
//
//	migrate up
//	migrate down [steps]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/manjeet0505/Expense/config"
	"github.com/manjeet0505/Expense/internal/infra/db"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(os.Args[1:], config.Load()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, cfg *config.Config) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		status, err := db.RunMigrations(cfg.Database.URL)
		if err != nil {
			return err
		}
		slog.Info("Migrations applied", "from", status.From, "to", status.To)
		return nil
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count %q: %w", args[1], err)
			}
			steps = n
		}
		if err := db.RollbackMigrations(cfg.Database.URL, steps); err != nil {
			return err
		}
		slog.Info("Migrations rolled back", "steps", steps)
		return nil
	default:
		return fmt.Errorf("unknown command %q, expected up or down", command)
	}
}
