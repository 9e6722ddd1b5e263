package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"spiralscreen/internal/jwt"
	"spiralscreen/internal/middlewares"
	"spiralscreen/internal/models"
	"spiralscreen/internal/services"
)

func newAuthenticatedRequest(method, target string, identity jwt.Identity) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
}

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("admin requester", func(t *testing.T) {
		mockSvc := NewMockUserLister(ctrl)
		mockSvc.EXPECT().ListUsers(gomock.Any(), int64(1)).Return([]models.UserDB{
			{ID: 1, Username: "admin", PasswordHash: "hash1", IsAdmin: true},
			{ID: 2, Username: "alice", PasswordHash: "hash2", IsAdmin: false},
		}, nil)

		handler := NewListUsersHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newAuthenticatedRequest(http.MethodGet, "/admin/users", jwt.Identity{UserID: 1, IsAdmin: true}))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []UserSummary
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []UserSummary{
			{ID: 1, Username: "admin", IsAdmin: true},
			{ID: 2, Username: "alice", IsAdmin: false},
		}, resp)

		// Password hashes must never leak into the listing.
		assert.NotContains(t, rr.Body.String(), "hash1")
		assert.NotContains(t, rr.Body.String(), "hash2")
	})

	t.Run("non-admin requester", func(t *testing.T) {
		mockSvc := NewMockUserLister(ctrl)
		mockSvc.EXPECT().ListUsers(gomock.Any(), int64(2)).Return(nil, services.ErrForbidden)

		handler := NewListUsersHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newAuthenticatedRequest(http.MethodGet, "/admin/users", jwt.Identity{UserID: 2}))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		handler := NewListUsersHandler(NewMockUserLister(ctrl))

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("internal server error", func(t *testing.T) {
		mockSvc := NewMockUserLister(ctrl)
		mockSvc.EXPECT().ListUsers(gomock.Any(), int64(1)).Return(nil, errors.New("db down"))

		handler := NewListUsersHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newAuthenticatedRequest(http.MethodGet, "/admin/users", jwt.Identity{UserID: 1, IsAdmin: true}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
