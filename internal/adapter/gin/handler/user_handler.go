package handler

import (
	"net/http"

	domain "paginated-user-service/internal/domain/user"
	"paginated-user-service/internal/usecase/user"
	apperrors "paginated-user-service/pkg/errors"
	"paginated-user-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	TotalUsers  int64          `json:"totalUsers"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int64          `json:"currentPage"`
	Users       []UserResponse `json:"users"`
}

// MessageResponse carries a success acknowledgment or an error text
type MessageResponse struct {
	Message string `json:"message"`
}

// SeedUsers handles POST /api/users/seed
func (h *UserHandler) SeedUsers(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.uc.SeedUsers(ctx)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("SeedUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: resp.Message})
}

// ListUsers handles GET /api/users?page=&limit=
// Missing or malformed page and limit fall back to 1 and 10.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	params := domain.ParseParams(c.Query("page"), c.Query("limit"))

	logger.WithContext(ctx, h.log).Debug("ListUsers request",
		zap.String("raw_page", c.Query("page")),
		zap.String("raw_limit", c.Query("limit")),
		zap.Int64("page", params.Page),
		zap.Int64("limit", params.Limit),
	)

	resp, err := h.uc.ListUsers(ctx, user.ListUsersRequest{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		logger.WithContext(ctx, h.log).Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Age:   u.Age,
		}
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		TotalUsers:  resp.TotalUsers,
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
		Users:       users,
	})
}

// handleError is the only place usecase errors become status codes.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), MessageResponse{Message: err.Error()})
}
