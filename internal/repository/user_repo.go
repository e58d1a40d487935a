package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kidlearn/internal/database"
	"kidlearn/internal/models"
)

// total stars are never stored; they are summed from the progress ledger
const userColumns = `
	u.id, u.name, u.age, u.last_active, u.created_at,
	COALESCE((SELECT SUM(p.stars) FROM user_progress p WHERE p.user_id = u.id), 0)
`

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *UserRepository) WithTx(tx database.DBTX) *UserRepository {
	return &UserRepository{db: tx}
}

// CreateUser inserts a new profile with no activity yet
func (r *UserRepository) CreateUser(ctx context.Context, name string, age int, createdAt time.Time) (*models.User, error) {
	query := `INSERT INTO users (name, age, created_at) VALUES (?, ?, ?)`
	id, err := r.db.ExecReturningID(ctx, query, name, age, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:        id,
		Name:      name,
		Age:       age,
		CreatedAt: createdAt,
	}, nil
}

// GetUserByID retrieves a user by ID. Returns nil, nil when absent.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = ?`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every profile, most recently active first.
// Profiles that were never active come last.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		ORDER BY u.last_active IS NULL, u.last_active DESC, u.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a profile's name and age
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, name string, age int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, age = ? WHERE id = ?`, name, age, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// TouchLastActive stamps the user's last activity time
func (r *UserRepository) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_active = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}
	return nil
}

// DeleteUser removes the profile row only. Returns false if it did not exist.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var lastActive sql.NullTime
	if err := row.Scan(&user.ID, &user.Name, &user.Age, &lastActive, &user.CreatedAt, &user.TotalStars); err != nil {
		return nil, err
	}
	if lastActive.Valid {
		t := lastActive.Time
		user.LastActive = &t
	}
	return user, nil
}

// RestoreUser inserts a profile with its original ID and timestamps
func (r *UserRepository) RestoreUser(ctx context.Context, user models.User) error {
	query := `INSERT INTO users (id, name, age, last_active, created_at) VALUES (?, ?, ?, ?, ?)`
	var lastActive sql.NullTime
	if user.LastActive != nil {
		lastActive = sql.NullTime{Time: *user.LastActive, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Age, lastActive, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to restore user %d: %w", user.ID, err)
	}
	return nil
}
