package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/logger"
	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	secured  *gin.RouterGroup
	accounts *mocks.MockAccountUseCase
	user     *entity.User
	admin    *entity.User
}

func testUser(t *testing.T, id uint64, username string, admin bool) *entity.User {
	t.Helper()
	user, err := entity.NewUser("Test "+username, username+"@example.com", username, "hash", testNow)
	require.NoError(t, err)
	user.ID = id
	user.IsAdmin = admin
	return user
}

// newTestServer wires the error handler and bearer authentication in front of
// the routes a test registers on secured
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		t:        t,
		router:   gin.New(),
		accounts: mocks.NewMockAccountUseCase(t),
		user:     testUser(t, 7, "ada", false),
		admin:    testUser(t, 1, "admin", true),
	}

	s.accounts.On("Authenticate", mock.Anything, userToken).Maybe().Return(s.user, nil)
	s.accounts.On("Authenticate", mock.Anything, adminToken).Maybe().Return(s.admin, nil)
	s.accounts.On("Authenticate", mock.Anything, mock.Anything).Maybe().Return(nil, errs.ErrUnauthorized)

	s.router.Use(middleware.ErrorHandler(logger.NewNoopLogger()))
	s.secured = s.router.Group("/", middleware.Authenticate(s.accounts))
	return s
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	return decode[dto.ErrorResponse](t, w)
}
