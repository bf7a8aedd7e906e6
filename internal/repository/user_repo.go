package repository

import (
	"context"
	"database/sql"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt)
}

// GetByID retrieves a user by ID, nil when absent
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, username, password, role, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username, nil when absent
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, role, created_at FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// UsernameExists checks if a username is already registered
func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username,
	).Scan(&exists)
	return exists, err
}

// AdminExists reports whether any admin account exists
func (r *userRepo) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)", models.RoleAdmin,
	).Scan(&exists)
	return exists, err
}

// List returns all users, newest first
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, password, role, created_at FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *userRepo) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
