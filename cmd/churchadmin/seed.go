package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"churchconnect/config"
	"churchconnect/internal/domain"
)

// devAdminPassword is used for the default admin outside production when
// DEFAULT_ADMIN_PASSWORD is not set.
const devAdminPassword = "admin123"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default admin account",
	Long: `Create the DEFAULT_ADMIN_* account when the admins table is empty.
Existing admins are left untouched.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return seedDefaultAdmin(ctx, newAuthService(db, cfg), cfg)
}

func defaultAdminAttrs(cfg *config.Config) (domain.AdminAttrs, error) {
	password := cfg.DefaultAdmin.Password
	if password == "" {
		if cfg.IsProduction() {
			return domain.AdminAttrs{}, errors.New("DEFAULT_ADMIN_PASSWORD is required to seed an admin in production")
		}
		logger.Warn("DEFAULT_ADMIN_PASSWORD not set, using development password", "username", cfg.DefaultAdmin.Username)
		password = devAdminPassword
	}
	return domain.AdminAttrs{
		Username: cfg.DefaultAdmin.Username,
		Email:    cfg.DefaultAdmin.Email,
		Password: password,
	}, nil
}

func seedDefaultAdmin(ctx context.Context, auth domain.AuthService, cfg *config.Config) error {
	attrs, err := defaultAdminAttrs(cfg)
	if err != nil {
		return err
	}
	created, err := auth.SeedDefaultAdmin(ctx, attrs)
	if err != nil {
		return fmt.Errorf("seeding default admin: %w", err)
	}
	if created {
		logger.Info("default admin created", "username", attrs.Username)
	} else {
		logger.Debug("admins already exist, skipping seed")
	}
	return nil
}
