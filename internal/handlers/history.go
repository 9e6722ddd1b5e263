package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/models"
)

// HistoryReader defines the interface that the history service must implement.
type HistoryReader interface {
	History(ctx context.Context, userID int64) ([]models.DrawingDB, error)
}

// HistoryErrorResponse represents an error response for history retrieval
// swagger:model HistoryErrorResponse
type HistoryErrorResponse struct {
	// Error message
	// default: invalid user id
	Error string `json:"error"`
}

// NewHistoryHandler returns an HTTP handler for submission history. Drawings
// come back newest first; an unknown user id yields an empty list.
// @Summary Get a user's submission history
// @Description Returns all drawings for the given user, newest first
// @Tags predictions
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} models.DrawingDB "Drawing records, newest first"
// @Failure 400 {object} handlers.HistoryErrorResponse "Invalid user id"
// @Failure 401 "Missing or invalid session token"
// @Security BearerAuth
// @Router /history/{userId} [get]
func NewHistoryHandler(svc HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(HistoryErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		drawings, err := svc.History(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(HistoryErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(drawings)
	}
}
