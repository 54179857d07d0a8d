package main

import (
	"context"
	"fmt"

	"pawhaven/internal/db"
	"pawhaven/internal/seed"
	"pawhaven/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "staff-email",
			Usage: "Email for the initial staff account",
			Value: "staff@pawhaven.org",
		},
		&cli.StringFlag{
			Name:  "staff-password",
			Usage: "Password for the initial staff account (skipped when empty)",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		petsRepo := store.NewPetRepository(pool)
		usersRepo := store.NewUserRepository(pool)

		logrus.Info("Seeding pets...")
		if err := seed.SeedPets(ctx, petsRepo); err != nil {
			return fmt.Errorf("failed to seed pets: %w", err)
		}

		if password := c.String("staff-password"); password != "" {
			logrus.Info("Seeding staff user...")
			if err := seed.SeedStaffUser(ctx, usersRepo, c.String("staff-email"), password); err != nil {
				return fmt.Errorf("failed to seed staff user: %w", err)
			}
		}

		logrus.Info("Seed complete")

		return nil
	},
}
