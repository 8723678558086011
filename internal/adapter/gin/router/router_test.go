package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"paginated-user-service/internal/adapter/db/gormdb"
	"paginated-user-service/internal/adapter/gin/handler"
	"paginated-user-service/internal/adapter/gin/middleware"
	"paginated-user-service/internal/adapter/repository/coalesced"
	usecase "paginated-user-service/internal/usecase/user"
	"paginated-user-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type pageBody struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
	Users       []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Age   int    `json:"age"`
	} `json:"users"`
}

// APISuite drives the full HTTP stack against an in-memory SQL store.
type APISuite struct {
	suite.Suite
	db     *gorm.DB
	repo   *gormdb.UserRepoGorm
	router *gin.Engine
	log    *zap.Logger
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.log = zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.NewGormLogger(s.log, 0.2, "warn"),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })
	s.Require().NoError(gormdb.Migrate(db))

	s.db = db
	s.repo = gormdb.NewUserRepoGorm(db, s.log)
	s.router = s.newRouter(nil)
}

func (s *APISuite) newRouter(rl *middleware.RateLimiter) *gin.Engine {
	uc := usecase.New(coalesced.NewUserRepository(s.repo, s.log), s.log)
	return SetupRouter(handler.NewUserHandler(uc, s.log), s.repo, rl, s.log)
}

func (s *APISuite) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func (s *APISuite) seed() {
	w := s.do(http.MethodPost, "/api/users/seed")
	s.Require().Equal(http.StatusCreated, w.Code)
	s.JSONEq(`{"message":"Dummy users inserted!"}`, w.Body.String())
}

func (s *APISuite) list(target string) pageBody {
	w := s.do(http.MethodGet, target)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var body pageBody
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *APISuite) TestSeedThenFirstPage() {
	s.seed()

	body := s.list("/api/users?page=1&limit=10")
	s.Equal(int64(100), body.TotalUsers)
	s.Equal(int64(10), body.TotalPages)
	s.Equal(int64(1), body.CurrentPage)
	s.Require().Len(body.Users, 10)
	s.Equal("Yopmail User 1", body.Users[0].Name)
	s.Equal("user1@yopmail.com", body.Users[0].Email)
	s.Equal(21, body.Users[0].Age)
	s.NotEmpty(body.Users[0].ID)
}

func (s *APISuite) TestSeedOrderAndAges() {
	s.seed()

	body := s.list("/api/users?page=1&limit=100")
	s.Require().Len(body.Users, 100)
	for i, u := range body.Users {
		n := i + 1
		s.Equal(fmt.Sprintf("Yopmail User %d", n), u.Name)
		s.Equal(fmt.Sprintf("user%d@yopmail.com", n), u.Email)
		s.Equal(20+n%10, u.Age)
	}
}

func (s *APISuite) TestPageBeyondEnd() {
	s.seed()

	body := s.list("/api/users?page=11&limit=10")
	s.Equal(int64(100), body.TotalUsers)
	s.Equal(int64(10), body.TotalPages)
	s.Equal(int64(11), body.CurrentPage)
	s.NotNil(body.Users)
	s.Empty(body.Users)
}

func (s *APISuite) TestMaxPageIsEmpty() {
	s.seed()

	body := s.list("/api/users?page=9223372036854775807&limit=10")
	s.Equal(int64(100), body.TotalUsers)
	s.Equal(int64(10), body.TotalPages)
	s.Equal(int64(math.MaxInt64), body.CurrentPage)
	s.NotNil(body.Users)
	s.Empty(body.Users)
}

func (s *APISuite) TestMaxLimitIsOnePage() {
	s.seed()

	body := s.list("/api/users?page=1&limit=9223372036854775807")
	s.Equal(int64(100), body.TotalUsers)
	s.Equal(int64(1), body.TotalPages)
	s.Len(body.Users, 100)

	body = s.list("/api/users?page=2&limit=9223372036854775807")
	s.Equal(int64(1), body.TotalPages)
	s.Empty(body.Users)
}

func (s *APISuite) TestSeedTwiceAppends() {
	s.seed()
	s.seed()

	body := s.list("/api/users")
	s.Equal(int64(200), body.TotalUsers)
	s.Equal(int64(20), body.TotalPages)
}

func (s *APISuite) TestDefaultsForMissingOrMalformedParams() {
	s.seed()

	for _, target := range []string{
		"/api/users",
		"/api/users?page=abc&limit=xyz",
		"/api/users?page=0&limit=0",
		"/api/users?page=-1&limit=-5",
	} {
		body := s.list(target)
		s.Equal(int64(1), body.CurrentPage, target)
		s.Equal(int64(10), body.TotalPages, target)
		s.Len(body.Users, 10, target)
	}
}

func (s *APISuite) TestSecondPageOfFive() {
	s.seed()

	body := s.list("/api/users?page=2&limit=5")
	s.Equal(int64(20), body.TotalPages)
	s.Equal(int64(2), body.CurrentPage)
	s.Require().Len(body.Users, 5)
	s.Equal("Yopmail User 6", body.Users[0].Name)
	s.Equal("Yopmail User 10", body.Users[4].Name)
}

func (s *APISuite) TestEmptyStore() {
	body := s.list("/api/users")
	s.Equal(int64(0), body.TotalUsers)
	s.Equal(int64(0), body.TotalPages)
	s.Equal(int64(1), body.CurrentPage)
	s.NotNil(body.Users)
	s.Empty(body.Users)
}

func (s *APISuite) TestStoreFailure() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	for _, req := range []struct{ method, target string }{
		{http.MethodPost, "/api/users/seed"},
		{http.MethodGet, "/api/users"},
	} {
		w := s.do(req.method, req.target)
		s.Equal(http.StatusInternalServerError, w.Code)

		var body map[string]string
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.NotEmpty(body["message"])
	}

	s.Equal(http.StatusServiceUnavailable, s.do(http.MethodGet, "/health").Code)
}

func (s *APISuite) TestHealth() {
	w := s.do(http.MethodGet, "/health")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"healthy"}`, w.Body.String())
}

func (s *APISuite) TestRequestIDEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(logger.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal("abc-123", w.Header().Get(logger.RequestIDHeader))
	s.NotEmpty(s.do(http.MethodGet, "/health").Header().Get(logger.RequestIDHeader))
}

func (s *APISuite) TestOpenAPIDocument() {
	w := s.do(http.MethodGet, SpecPath)
	s.Equal(http.StatusOK, w.Code)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	s.Require().True(ok)
	s.Contains(paths, "/api/users")
	s.Contains(paths, "/api/users/seed")
}

func (s *APISuite) TestRateLimited() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })

	s.router = s.newRouter(middleware.NewRateLimiter(client, middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstCapacity:     2,
		Enabled:           true,
	}, s.log))

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/users").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/users").Code)

	w := s.do(http.MethodGet, "/api/users")
	s.Equal(http.StatusTooManyRequests, w.Code)
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Contains(body["message"], "rate limit exceeded")
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("no reachable servers") }

func (s *APISuite) TestHealthUnavailable() {
	r := SetupRouter(handler.NewUserHandler(nil, s.log), failingPinger{}, nil, s.log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), "no reachable servers")
}
