package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/kittipos/equiptrack/internal/app/models"
	appRepos "github.com/kittipos/equiptrack/internal/app/repositories"
	"github.com/kittipos/equiptrack/internal/config"
	pkgAuth "github.com/kittipos/equiptrack/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// lockedStatuses are the canonical workflow rows. The gaps in the ID
// sequence are kept to stay compatible with existing ticket data.
var lockedStatuses = []appModels.Status{
	{ID: appModels.StatusPending.ID(), Name: "Pending", Description: "Reported, waiting for a technician", Color: "#f0ad4e"},
	{ID: appModels.StatusInProgress.ID(), Name: "In progress", Description: "A technician is working on it", Color: "#5bc0de"},
	{ID: appModels.StatusResolved.ID(), Name: "Resolved", Description: "Fixed, equipment back in service", Color: "#5cb85c"},
	{ID: appModels.StatusCannotFix.ID(), Name: "Cannot fix", Description: "Not repairable on site", Color: "#d9534f"},
	{ID: appModels.StatusReferred.ID(), Name: "Referred to computer center", Description: "Handed over for external repair", Color: "#aa66cc"},
	{ID: appModels.StatusDamaged.ID(), Name: "Damaged", Description: "Written off as damaged", Color: "#777777"},
}

// CreateDefaultData seeds the canonical status rows and a default admin
// account. It is idempotent and safe to run at every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	statusRepo := appRepos.NewStatusRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Seeding canonical statuses...")
	for i := range lockedStatuses {
		if err := statusRepo.UpsertLocked(ctx, &lockedStatuses[i]); err != nil {
			return err
		}
	}

	// Default admin account; the password must be changed after first login
	adminUsername := config.GetEnv("ADMIN_USERNAME", "admin")
	exists, err := userRepo.UsernameExists(ctx, adminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	hashed, err := pkgAuth.HashPassword(adminPassword)
	if err != nil {
		return errors.Join(errors.New("failed to hash admin password"), err)
	}

	admin := &appModels.User{
		Username:    adminUsername,
		Password:    hashed,
		DisplayName: "Administrator",
		Role:        appModels.RoleAdmin,
		Branch:      "IT",
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("username", adminUsername).Msg("Default admin account created")
	return nil
}
