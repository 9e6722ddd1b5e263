package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/middlewares"
	"spiralscreen/internal/models"
	"spiralscreen/internal/services"
)

// UserLister defines the interface that the admin user listing must implement.
type UserLister interface {
	ListUsers(ctx context.Context, requesterID int64) ([]models.UserDB, error)
}

// UserSummary is one row of the admin user listing, without credentials
// swagger:model UserSummary
type UserSummary struct {
	// User id
	// default: 1
	ID int64 `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`

	// Admin flag
	// default: false
	IsAdmin bool `json:"is_admin"`
}

// UsersErrorResponse represents an error response for the user listing
// swagger:model UsersErrorResponse
type UsersErrorResponse struct {
	// Error message
	// default: Admin privileges required
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler that lists all users for an
// admin requester. Password hashes are never included.
// @Summary List all users
// @Description Returns id, username and admin flag for every user. Admin only.
// @Tags admin
// @Produce json
// @Success 200 {array} handlers.UserSummary "All users"
// @Failure 401 "Missing or invalid session token"
// @Failure 403 {object} handlers.UsersErrorResponse "Requester is not an admin"
// @Security BearerAuth
// @Router /admin/users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		users, err := svc.ListUsers(r.Context(), identity.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(UsersErrorResponse{
					Error: "Admin privileges required",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UsersErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		summaries := make([]UserSummary, 0, len(users))
		for _, u := range users {
			summaries = append(summaries, UserSummary{
				ID:       u.ID,
				Username: u.Username,
				IsAdmin:  u.IsAdmin,
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summaries)
	}
}
