package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawingRepository_SaveAndList(t *testing.T) {
	d := openTestDB(t, "drawing_save_list")
	userWrite := NewUserWriteRepository(d)
	writeRepo := NewDrawingWriteRepository(d)
	readRepo := NewDrawingReadRepository(d)
	ctx := context.Background()

	userID, err := userWrite.Save(ctx, "alice", "hash", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.Save(ctx, userID, "uploads/first.png", 0.1))
	assert.NoError(t, writeRepo.Save(ctx, userID, "uploads/second.png", 0.6))
	assert.NoError(t, writeRepo.Save(ctx, userID, "uploads/third.png", 0.9))

	drawings, err := readRepo.ListByUserID(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, drawings, 3)

	// Newest first.
	assert.Equal(t, "uploads/third.png", drawings[0].ImagePath)
	assert.Equal(t, "uploads/second.png", drawings[1].ImagePath)
	assert.Equal(t, "uploads/first.png", drawings[2].ImagePath)

	for i := 0; i < len(drawings)-1; i++ {
		assert.False(t, drawings[i].CreatedAt.Before(drawings[i+1].CreatedAt))
	}
}

func TestDrawingRepository_ListUnknownUser(t *testing.T) {
	d := openTestDB(t, "drawing_unknown_user")
	readRepo := NewDrawingReadRepository(d)

	drawings, err := readRepo.ListByUserID(context.Background(), 12345)
	assert.NoError(t, err)
	assert.Empty(t, drawings)
}

func TestDrawingRepository_CountAndAverage(t *testing.T) {
	d := openTestDB(t, "drawing_count_avg")
	userWrite := NewUserWriteRepository(d)
	writeRepo := NewDrawingWriteRepository(d)
	readRepo := NewDrawingReadRepository(d)
	ctx := context.Background()

	t.Run("EmptyTable", func(t *testing.T) {
		count, err := readRepo.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)

		avg, err := readRepo.AverageScore(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, avg)
	})

	userID, err := userWrite.Save(ctx, "bob", "hash", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.Save(ctx, userID, "uploads/a.png", 0.2))
	assert.NoError(t, writeRepo.Save(ctx, userID, "uploads/b.png", 0.8))

	t.Run("WithDrawings", func(t *testing.T) {
		count, err := readRepo.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		avg, err := readRepo.AverageScore(ctx)
		assert.NoError(t, err)
		assert.InDelta(t, 0.5, avg, 1e-9)
	})
}
