package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/models"
)

// DrawingReadRepository provides read-only access to drawing records.
type DrawingReadRepository struct {
	db *sqlx.DB
}

func NewDrawingReadRepository(db *sqlx.DB) *DrawingReadRepository {
	return &DrawingReadRepository{db: db}
}

// ListByUserID returns all drawings for a user, newest first. An unknown user
// yields an empty list.
func (r *DrawingReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.DrawingDB, error) {
	const query = `
		SELECT id, user_id, image_path, score, created_at
		FROM drawings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	drawings := []models.DrawingDB{}
	if err := r.db.SelectContext(ctx, &drawings, query, userID); err != nil {
		logger.Log.Errorw("list drawings failed", "user_id", userID, "error", err)
		return nil, err
	}

	return drawings, nil
}

// Count returns the total number of drawings.
func (r *DrawingReadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM drawings`); err != nil {
		logger.Log.Errorw("count drawings failed", "error", err)
		return 0, err
	}
	return count, nil
}

// AverageScore returns the arithmetic mean of all stored scores, or 0 when no
// drawings exist.
func (r *DrawingReadRepository) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, `SELECT COALESCE(AVG(score), 0) FROM drawings`); err != nil {
		logger.Log.Errorw("average score failed", "error", err)
		return 0, err
	}
	return avg, nil
}

// DrawingWriteRepository provides write access to drawing records.
type DrawingWriteRepository struct {
	db *sqlx.DB
}

func NewDrawingWriteRepository(db *sqlx.DB) *DrawingWriteRepository {
	return &DrawingWriteRepository{db: db}
}

// Save records a drawing submission at the current server time.
func (r *DrawingWriteRepository) Save(ctx context.Context, userID int64, imagePath string, score float64) error {
	const query = `
		INSERT INTO drawings (user_id, image_path, score, created_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, imagePath, score, time.Now().UTC()); err != nil {
		logger.Log.Errorw("save drawing failed", "user_id", userID, "error", err)
		return err
	}

	return nil
}
