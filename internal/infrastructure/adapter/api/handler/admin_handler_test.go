package handler_test

import (
	"net/http"
	"testing"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/logger"
	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (*testServer, *mocks.MockAdminUseCase) {
	s := newTestServer(t)
	admin := mocks.NewMockAdminUseCase(t)

	h := handler.NewAdminHandler(admin, logger.NewNoopLogger())
	group := s.secured.Group("/admin", middleware.RequireAdmin())
	group.GET("/users", h.ListUsers)
	group.PUT("/users/:id/credits", h.SetCredits)
	group.DELETE("/users/:id", h.DeleteUser)
	group.GET("/stats", h.Stats)
	return s, admin
}

func TestAdminHandler_RequiresAdmin(t *testing.T) {
	s, admin := newAdminFixture(t)

	w := s.do(http.MethodGet, "/admin/users", "", userToken)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Admin access required", resp.Message)
	assert.Equal(t, errs.CodeForbidden, resp.Code)
	admin.AssertNotCalled(t, "ListUsers", mock.Anything)

	w = s.do(http.MethodGet, "/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	s, admin := newAdminFixture(t)
	admin.On("ListUsers", mock.Anything).Return([]*entity.User{s.admin, s.user}, nil).Once()

	w := s.do(http.MethodGet, "/admin/users", "", adminToken)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]dto.UserResponse](t, w)
	require.Len(t, resp, 2)
	assert.True(t, resp[0].IsAdmin)
	assert.Equal(t, "ada", resp[1].Username)
}

func TestAdminHandler_SetCredits(t *testing.T) {
	updated := func(s *testServer, credits int64) *entity.User {
		u := *s.user
		require.NoError(t, u.SetCredits(credits, testNow))
		return &u
	}

	t.Run("Credits from the query string", func(t *testing.T) {
		s, admin := newAdminFixture(t)
		admin.On("SetCredits", mock.Anything, s.user.ID, int64(250)).Return(updated(s, 250), nil).Once()

		w := s.do(http.MethodPut, "/admin/users/7/credits?credits=250", "", adminToken)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(250), decode[dto.UserResponse](t, w).Credits)
	})

	t.Run("Credits from the JSON body", func(t *testing.T) {
		s, admin := newAdminFixture(t)
		admin.On("SetCredits", mock.Anything, s.user.ID, int64(0)).Return(updated(s, 0), nil).Once()

		w := s.do(http.MethodPut, "/admin/users/7/credits", `{"credits":0}`, adminToken)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(0), decode[dto.UserResponse](t, w).Credits)
	})

	t.Run("Missing or malformed credits", func(t *testing.T) {
		s, admin := newAdminFixture(t)

		for _, tc := range []struct{ path, body string }{
			{"/admin/users/7/credits", ""},
			{"/admin/users/7/credits", `{}`},
			{"/admin/users/7/credits?credits=ten", ""},
			{"/admin/users/0/credits?credits=5", ""},
		} {
			w := s.do(http.MethodPut, tc.path, tc.body, adminToken)
			assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		}
		admin.AssertNotCalled(t, "SetCredits", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Negative credits and unknown user", func(t *testing.T) {
		s, admin := newAdminFixture(t)
		admin.On("SetCredits", mock.Anything, s.user.ID, int64(-5)).Return(nil, errs.ErrNegativeCredits).Once()
		admin.On("SetCredits", mock.Anything, uint64(404), int64(5)).Return(nil, errs.ErrUserNotFound).Once()

		w := s.do(http.MethodPut, "/admin/users/7/credits?credits=-5", "", adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodPut, "/admin/users/404/credits?credits=5", "", adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decodeError(t, w).Message)
	})
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Deleted", nil, http.StatusOK, "User 7 deleted"},
		{"Admin target", errs.ErrAdminDeletion, http.StatusForbidden, "Cannot delete admin user"},
		{"Unknown user", errs.ErrUserNotFound, http.StatusNotFound, "User not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, admin := newAdminFixture(t)
			admin.On("DeleteUser", mock.Anything, uint64(7)).Return(tc.err).Once()

			w := s.do(http.MethodDelete, "/admin/users/7", "", adminToken)

			assert.Equal(t, tc.status, w.Code)
			if tc.err == nil {
				assert.Equal(t, tc.message, decode[dto.MessageResponse](t, w).Message)
			} else {
				assert.Equal(t, tc.message, decodeError(t, w).Message)
			}
		})
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	s, admin := newAdminFixture(t)
	admin.On("Stats", mock.Anything).Return(&usecase.SystemStats{
		TotalUsers: 3, TotalTransactions: 10, FraudTransactions: 2,
	}, nil).Once()

	w := s.do(http.MethodGet, "/admin/stats", "", adminToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.SystemStatsResponse{TotalUsers: 3, TotalTransactions: 10, FraudTransactions: 2},
		decode[dto.SystemStatsResponse](t, w))
}
