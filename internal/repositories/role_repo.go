package repositories

import (
	"context"
	"log/slog"

	"github.com/ivstoyanov/rolodex/internal/database"
	"github.com/ivstoyanov/rolodex/internal/models"
)

type RoleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &role, nil
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}

// EnsureDefaultRoles seeds the two fixed roles on first start against an
// empty store.
func (r *RoleRepository) EnsureDefaultRoles(ctx context.Context, logger *slog.Logger) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range []string{models.RoleStandard, models.RoleElevated} {
		if _, err := r.db.Pool.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name,
		); err != nil {
			return database.MapPostgresError(err)
		}
	}

	logger.Info("default roles seeded",
		slog.String("standard", models.RoleStandard),
		slog.String("elevated", models.RoleElevated),
	)
	return nil
}
