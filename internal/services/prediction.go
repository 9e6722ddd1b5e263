package services

import (
	"context"
	"errors"
	"fmt"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/models"
	"spiralscreen/internal/scoring"
)

// ErrImageDecode is returned when the uploaded bytes are not a decodable image.
var ErrImageDecode = errors.New("uploaded file is not a decodable image")

// ImageSaver persists uploaded image bytes and returns the stored path.
type ImageSaver interface {
	Save(userID int64, data []byte) (string, error)
}

// Scorer produces a risk score in [0,1] for a stored image.
type Scorer interface {
	Score(imagePath string) (float64, error)
}

// Explainer renders an explanation overlay for a stored image as a base64 PNG.
type Explainer interface {
	Explain(imagePath string) (string, error)
}

// DrawingWriter records drawing submissions.
type DrawingWriter interface {
	Save(ctx context.Context, userID int64, imagePath string, score float64) error
}

// DrawingReader reads back a user's submissions.
type DrawingReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.DrawingDB, error)
}

// PredictionResult is the outcome of one drawing submission.
type PredictionResult struct {
	Score       float64
	Label       string
	Explanation string // base64-encoded PNG with the overlay applied
}

// PredictionService orchestrates one submission: store the image, score it,
// render the explanation overlay and record the drawing.
type PredictionService struct {
	images    ImageSaver
	scorer    Scorer
	explainer Explainer
	writer    DrawingWriter
	reader    DrawingReader
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	images ImageSaver,
	scorer Scorer,
	explainer Explainer,
	writer DrawingWriter,
	reader DrawingReader,
) *PredictionService {
	return &PredictionService{
		images:    images,
		scorer:    scorer,
		explainer: explainer,
		writer:    writer,
		reader:    reader,
	}
}

// Submit processes one uploaded drawing for the given user.
func (svc *PredictionService) Submit(ctx context.Context, userID int64, imageBytes []byte) (PredictionResult, error) {
	path, err := svc.images.Save(userID, imageBytes)
	if err != nil {
		logger.Log.Errorw("failed to store uploaded image", "user_id", userID, "err", err)
		return PredictionResult{}, err
	}

	score, err := svc.scorer.Score(path)
	if err != nil {
		logger.Log.Errorw("failed to score image", "path", path, "err", err)
		return PredictionResult{}, err
	}

	explanation, err := svc.explainer.Explain(path)
	if err != nil {
		if errors.Is(err, scoring.ErrNotAnImage) {
			logger.Log.Infow("undecodable upload", "user_id", userID, "path", path)
			return PredictionResult{}, fmt.Errorf("%w: %s", ErrImageDecode, err)
		}
		logger.Log.Errorw("failed to render explanation", "path", path, "err", err)
		return PredictionResult{}, err
	}

	if err := svc.writer.Save(ctx, userID, path, score); err != nil {
		logger.Log.Errorw("failed to record drawing", "user_id", userID, "err", err)
		return PredictionResult{}, err
	}

	return PredictionResult{
		Score:       score,
		Label:       scoring.Label(score),
		Explanation: explanation,
	}, nil
}

// History returns all of a user's drawings, newest first. An unknown user
// simply yields an empty list.
func (svc *PredictionService) History(ctx context.Context, userID int64) ([]models.DrawingDB, error) {
	drawings, err := svc.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load history", "user_id", userID, "err", err)
		return nil, err
	}
	return drawings, nil
}
