package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"spiralscreen/internal/services"
)

func TestStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockStatsReader(ctrl)
		mockSvc.EXPECT().Stats(gomock.Any()).
			Return(services.Stats{TotalUsers: 3, TotalDrawings: 10, AverageRiskScore: 0.5}, nil)

		handler := NewStatsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp StatsResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.TotalUsers)
		assert.Equal(t, int64(10), resp.TotalDrawings)
		assert.Equal(t, 0.5, resp.AverageRiskScore)
	})

	t.Run("empty store", func(t *testing.T) {
		mockSvc := NewMockStatsReader(ctrl)
		mockSvc.EXPECT().Stats(gomock.Any()).Return(services.Stats{}, nil)

		handler := NewStatsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp StatsResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0.0, resp.AverageRiskScore)
	})

	t.Run("internal server error", func(t *testing.T) {
		mockSvc := NewMockStatsReader(ctrl)
		mockSvc.EXPECT().Stats(gomock.Any()).Return(services.Stats{}, errors.New("db down"))

		handler := NewStatsHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
