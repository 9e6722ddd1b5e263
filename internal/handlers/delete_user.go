package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/middlewares"
	"spiralscreen/internal/services"
)

// UserRemover defines the interface that the admin user deletion must implement.
type UserRemover interface {
	DeleteUser(ctx context.Context, requesterID, targetID int64) (string, error)
}

// DeleteUserResponse represents a successful deletion response
// swagger:model DeleteUserResponse
type DeleteUserResponse struct {
	// Success message naming the removed user
	// default: User 'john_doe' deleted
	Message string `json:"message"`
}

// DeleteUserErrorResponse represents an error response for user deletion
// swagger:model DeleteUserErrorResponse
type DeleteUserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewDeleteUserHandler returns an HTTP handler that removes a user together
// with all of their drawings. Admin only; self-deletion is blocked.
// @Summary Delete a user
// @Description Removes the target user and all of their drawings in one transaction. Admin only.
// @Tags admin
// @Produce json
// @Param targetId path int true "Id of the user to delete"
// @Success 200 {object} handlers.DeleteUserResponse "Deleted username"
// @Failure 400 {object} handlers.DeleteUserErrorResponse "Invalid target id / self-deletion"
// @Failure 401 "Missing or invalid session token"
// @Failure 403 {object} handlers.DeleteUserErrorResponse "Requester is not an admin"
// @Failure 404 {object} handlers.DeleteUserErrorResponse "Target user not found"
// @Security BearerAuth
// @Router /admin/users/{targetId} [delete]
func NewDeleteUserHandler(svc UserRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		targetID, err := strconv.ParseInt(chi.URLParam(r, "targetId"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteUserErrorResponse{
				Error: "invalid target id",
			})
			return
		}

		username, err := svc.DeleteUser(r.Context(), identity.UserID, targetID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Admin privileges required",
				})
			case errors.Is(err, services.ErrSelfDelete):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Admins cannot delete their own account",
				})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteUserResponse{
			Message: fmt.Sprintf("User %q deleted", username),
		})
	}
}
