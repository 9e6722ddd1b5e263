package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/models"
)

// UserReadRepository provides read-only access to user records.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the user with the given username, or nil if none exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE username = ?
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("get user by username failed", "username", username, "error", err)
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE id = ?
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("get user by id failed", "id", id, "error", err)
		return nil, err
	}

	return &user, nil
}

// List returns all users ordered by id.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		ORDER BY id
	`

	users := []models.UserDB{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		logger.Log.Errorw("list users failed", "error", err)
		return nil, err
	}

	return users, nil
}

// Count returns the total number of users.
func (r *UserReadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Log.Errorw("count users failed", "error", err)
		return 0, err
	}
	return count, nil
}

// UserWriteRepository provides write access to user records.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns its generated id.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash string, isAdmin bool) (int64, error) {
	const query = `
		INSERT INTO users (username, password_hash, is_admin)
		VALUES (?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, username, passwordHash, isAdmin)
	if err != nil {
		logger.Log.Errorw("save user failed", "username", username, "error", err)
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	return id, nil
}

// DeleteWithDrawings removes a user and all of their drawings in one
// transaction, so a crash cannot leave orphaned drawing rows behind.
func (r *UserWriteRepository) DeleteWithDrawings(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM drawings WHERE user_id = ?`, id); err != nil {
		_ = tx.Rollback()
		logger.Log.Errorw("delete drawings failed", "user_id", id, "error", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		logger.Log.Errorw("delete user failed", "user_id", id, "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	return nil
}
