package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/services"
)

// StatsReader defines the interface that the stats service must implement.
type StatsReader interface {
	Stats(ctx context.Context) (services.Stats, error)
}

// StatsResponse represents the admin statistics response
// swagger:model StatsResponse
type StatsResponse struct {
	// Total registered users
	// default: 10
	TotalUsers int64 `json:"total_users"`

	// Total submitted drawings
	// default: 25
	TotalDrawings int64 `json:"total_drawings"`

	// Arithmetic mean of all risk scores, 0 when no drawings exist
	// default: 0.5
	AverageRiskScore float64 `json:"average_risk_score"`
}

// StatsErrorResponse represents an error response for statistics
// swagger:model StatsErrorResponse
type StatsErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewStatsHandler returns an HTTP handler for aggregate statistics.
// @Summary Aggregate statistics
// @Description Returns user and drawing counts plus the mean risk score
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.StatsResponse "Aggregate counts and average score"
// @Failure 401 "Missing or invalid session token"
// @Security BearerAuth
// @Router /admin/stats [get]
func NewStatsHandler(svc StatsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(StatsErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(StatsResponse{
			TotalUsers:       stats.TotalUsers,
			TotalDrawings:    stats.TotalDrawings,
			AverageRiskScore: stats.AverageRiskScore,
		})
	}
}
