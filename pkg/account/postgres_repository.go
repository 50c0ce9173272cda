package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for a unique constraint
// violation, raised by the accounts_username_key constraint.
const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

// FindByUsername retrieves an account by its exact username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (Account, error) {
	query := `
		SELECT id, username, password, first_name, last_name, role, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`

	acct := Account{}
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&acct.ID,
		&acct.Username,
		&acct.Password,
		&acct.FirstName,
		&acct.LastName,
		&acct.Role,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("failed to find account: %w", err)
	}
	return acct, nil
}

// Create inserts a new account, mapping a unique violation on the
// username constraint to ErrUsernameTaken.
func (r *PostgresRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	query := `
		INSERT INTO accounts (username, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, password, first_name, last_name, role, created_at, updated_at
	`

	acct := Account{}
	err := r.pool.QueryRow(ctx, query,
		params.Username,
		params.Password,
		params.FirstName,
		params.LastName,
		params.Role,
	).Scan(
		&acct.ID,
		&acct.Username,
		&acct.Password,
		&acct.FirstName,
		&acct.LastName,
		&acct.Role,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Account{}, ErrUsernameTaken
		}
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return acct, nil
}

// UpdatePassword replaces the stored password for the username.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	query := `
		UPDATE accounts
		SET password = $2, updated_at = now()
		WHERE username = $1
	`

	tag, err := r.pool.Exec(ctx, query, username, newPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
