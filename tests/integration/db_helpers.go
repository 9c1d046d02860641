package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ivstoyanov/rolodex/internal/database"
	"github.com/ivstoyanov/rolodex/internal/models"
	pkgauth "github.com/ivstoyanov/rolodex/pkg/auth"
)

// TestDB manages a PostgreSQL testcontainer and its connection pool.
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase starts a PostgreSQL container and runs the embedded
// migrations against it.
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("rolodex"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &database.DB{Pool: pool}

	if err := database.Migrate(ctx, db); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         db,
	}, nil
}

// Teardown stops the container and closes the connection pool.
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates the account tables for test isolation. Roles stay
// seeded.
func (db *TestDB) CleanupTables(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, "TRUNCATE TABLE users CASCADE"); err != nil {
		return fmt.Errorf("failed to truncate users: %w", err)
	}
	return nil
}

// SeedRoles inserts the two fixed roles and returns their ids by name.
func (db *TestDB) SeedRoles(ctx context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, 2)

	for _, name := range []string{models.RoleStandard, models.RoleElevated} {
		var id int64
		err := db.Pool.QueryRow(ctx,
			`INSERT INTO roles (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, name,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to seed role %s: %w", name, err)
		}
		ids[name] = id
	}

	return ids, nil
}

// SeedAccount inserts a fully populated account with a hashed password and
// the given roles.
func (db *TestDB) SeedAccount(ctx context.Context, email, password, lastName, dateOfBirth string, roleIDs ...int64) (int64, error) {
	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	var id int64
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, date_of_birth, phone_number, email,
		                   password_hash, register_date, country, currency, city)
		VALUES ('Test', $1, $2, '+359881234567', $3, $4, '01/06/2024 10:30', 'Bulgaria', 'BGN', 'Sofia')
		RETURNING id
	`, lastName, dateOfBirth, email, hash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	for _, roleID := range roleIDs {
		if _, err := db.Pool.Exec(ctx,
			`INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)`, id, roleID,
		); err != nil {
			return 0, fmt.Errorf("failed to link role: %w", err)
		}
	}

	return id, nil
}
