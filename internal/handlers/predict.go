package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/middlewares"
	"spiralscreen/internal/services"
)

// maxUploadBytes bounds in-memory multipart parsing.
const maxUploadBytes = 32 << 20

// Predictor defines the interface that the prediction service must implement.
type Predictor interface {
	Submit(ctx context.Context, userID int64, imageBytes []byte) (services.PredictionResult, error)
}

// PredictResponse represents a successful prediction response
// swagger:model PredictResponse
type PredictResponse struct {
	// Risk score in [0,1]
	// default: 0.42
	Score float64 `json:"score"`

	// Risk label derived from the score
	// default: Healthy
	Label string `json:"label"`

	// Base64-encoded PNG with the heat-map overlay applied
	Explanation string `json:"explanation"`
}

// PredictErrorResponse represents an error response for prediction
// swagger:model PredictErrorResponse
type PredictErrorResponse struct {
	// Error message
	// default: Uploaded file is not a decodable image
	Error string `json:"error"`
}

// NewPredictHandler returns an HTTP handler for drawing submission. The
// submitting user is taken from the verified session identity, not from the
// form data.
// @Summary Submit a drawing for scoring
// @Description Stores the uploaded image, computes a risk score and returns it with a heat-map overlay
// @Tags predictions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Hand-drawn spiral/wave image"
// @Success 200 {object} handlers.PredictResponse "Score, label and explanation image"
// @Failure 400 {object} handlers.PredictErrorResponse "Missing file / undecodable image"
// @Failure 401 "Missing or invalid session token"
// @Security BearerAuth
// @Router /predict [post]
func NewPredictHandler(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PredictErrorResponse{
				Error: "invalid multipart form",
			})
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PredictErrorResponse{
				Error: "image file is required",
			})
			return
		}
		defer file.Close()

		imageBytes, err := io.ReadAll(file)
		if err != nil {
			logger.Log.Errorw("failed to read upload", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(PredictErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		result, err := svc.Submit(r.Context(), identity.UserID, imageBytes)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrImageDecode):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PredictErrorResponse{
					Error: "Uploaded file is not a decodable image",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(PredictErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PredictResponse{
			Score:       result.Score,
			Label:       result.Label,
			Explanation: result.Explanation,
		})
	}
}
