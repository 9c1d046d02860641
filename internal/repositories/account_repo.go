package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ivstoyanov/rolodex/internal/database"
	"github.com/ivstoyanov/rolodex/internal/models"
)

// AccountRepository provides access to the users table. Roles are a
// many-to-many relation and ride along on every read via array aggregation.
type AccountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const selectAccounts = `
	SELECT u.id, u.first_name, u.last_name, u.date_of_birth, u.phone_number,
	       u.email, u.password_hash, u.register_date, u.country, u.currency, u.city,
	       COALESCE(array_agg(r.id ORDER BY r.id) FILTER (WHERE r.id IS NOT NULL), '{}'),
	       COALESCE(array_agg(r.name ORDER BY r.id) FILTER (WHERE r.id IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN users_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

const groupAccounts = ` GROUP BY u.id`

// searchColumns maps the closed SearchField enumeration to its column. The
// enum is validated before queries are built, so no raw selector ever
// reaches SQL.
var searchColumns = map[models.SearchField]string{
	models.SearchByFirstName:   "u.first_name",
	models.SearchByLastName:    "u.last_name",
	models.SearchByPhoneNumber: "u.phone_number",
	models.SearchByEmail:       "u.email",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccountRow(scanner rowScanner) (*models.Account, error) {
	var account models.Account
	var roleIDs []int64
	var roleNames []string

	err := scanner.Scan(
		&account.ID, &account.FirstName, &account.LastName, &account.DateOfBirth,
		&account.PhoneNumber, &account.Email, &account.PasswordHash,
		&account.RegisterDate, &account.Country, &account.Currency, &account.City,
		&roleIDs, &roleNames,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	account.Roles = make([]models.Role, 0, len(roleIDs))
	for i := range roleIDs {
		account.Roles = append(account.Roles, models.Role{ID: roleIDs[i], Name: roleNames[i]})
	}

	return &account, nil
}

func scanAccountRows(rows pgx.Rows) ([]*models.Account, error) {
	defer rows.Close()

	accounts := make([]*models.Account, 0)

	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return accounts, nil
}

// paginate appends LIMIT/OFFSET for a page request. A nil request is the
// legacy unpaginated mode and leaves the query untouched.
func paginate(query string, args []any, page *models.PageRequest) (string, []any) {
	if page == nil {
		return query, args
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	return query, append(args, page.Size, page.Offset())
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := selectAccounts + ` WHERE u.email = $1` + groupAccounts

	return scanAccountRow(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return exists, nil
}

// List returns accounts in insertion order plus the total row count.
func (r *AccountRepository) List(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error) {
	query := selectAccounts + groupAccounts + ` ORDER BY u.id`
	query, args := paginate(query, nil, page)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts: %w", err)
	}

	accounts, err := scanAccountRows(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// ListOrderedByLastNameAndDateOfBirth orders by last name, then by the
// calendar value of the dd/MM/yyyy date-of-birth string. to_date does the
// calendar interpretation; raw string order would be wrong.
func (r *AccountRepository) ListOrderedByLastNameAndDateOfBirth(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error) {
	query := selectAccounts + groupAccounts +
		` ORDER BY u.last_name, to_date(u.date_of_birth, 'DD/MM/YYYY')`
	query, args := paginate(query, nil, page)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ordered accounts: %w", err)
	}

	accounts, err := scanAccountRows(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// ListByField returns accounts whose selected field equals value exactly.
func (r *AccountRepository) ListByField(ctx context.Context, field models.SearchField, value string, page *models.PageRequest) ([]*models.Account, int64, error) {
	column, ok := searchColumns[field]
	if !ok {
		return nil, 0, models.ErrMissingParameter
	}

	query := selectAccounts + fmt.Sprintf(" WHERE %s = $1", column) + groupAccounts + ` ORDER BY u.id`
	query, args := paginate(query, []any{value}, page)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts by %s: %w", field, err)
	}

	accounts, err := scanAccountRows(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u WHERE %s = $1", column)
	if err := r.db.Pool.QueryRow(ctx, countQuery, value).Scan(&total); err != nil {
		return nil, 0, database.MapPostgresError(err)
	}

	return accounts, total, nil
}

// Create inserts the account and its role assignments in one transaction.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account, roleIDs []int64) (*models.Account, error) {
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (first_name, last_name, date_of_birth, phone_number, email,
			                   password_hash, register_date, country, currency, city)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query,
			account.FirstName, account.LastName, account.DateOfBirth,
			account.PhoneNumber, account.Email, account.PasswordHash,
			account.RegisterDate, account.Country, account.Currency, account.City,
		).Scan(&account.ID)
		if err != nil {
			return database.MapPostgresError(err)
		}

		for _, roleID := range roleIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)`,
				account.ID, roleID,
			); err != nil {
				return database.MapPostgresError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByEmail(ctx, account.Email)
}

// Update overwrites the account's editable columns and returns the stored
// record, roles included.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, password_hash = $5
		WHERE id = $6
	`

	result, err := r.db.Pool.Exec(ctx, query,
		account.FirstName, account.LastName, account.Email,
		account.PhoneNumber, account.PasswordHash, account.ID,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByEmail(ctx, account.Email)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}
