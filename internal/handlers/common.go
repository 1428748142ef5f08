package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promotions-api/internal/logger"
	"promotions-api/internal/models"
)

// PromotionStore is the persistence contract the handlers depend on. The
// repository package provides the gorm-backed implementation.
type PromotionStore interface {
	Create(ctx context.Context, promotion *models.Promotion) error
	Update(ctx context.Context, promotion *models.Promotion) error
	Delete(ctx context.Context, promotion *models.Promotion) error
	Find(ctx context.Context, id uint) (*models.Promotion, error)
	All(ctx context.Context) ([]models.Promotion, error)
	FindByName(ctx context.Context, name string) ([]models.Promotion, error)
	FindByProductID(ctx context.Context, productID int) ([]models.Promotion, error)
	FindByStartDate(ctx context.Context, startDate time.Time) ([]models.Promotion, error)
	FindByPromotionType(ctx context.Context, promotionType models.PromotionType) ([]models.Promotion, error)
	FindByStatus(ctx context.Context, status bool) ([]models.Promotion, error)
	Activate(ctx context.Context, promotion *models.Promotion) error
	Deactivate(ctx context.Context, promotion *models.Promotion) error
}

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	store PromotionStore
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(store PromotionStore) *CommonServices {
	return &CommonServices{store: store}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleStoreError maps a persistence failure onto an HTTP status code.
// Validation failures are the caller's fault; everything else is ours.
func handleStoreError(c *gin.Context, err error) {
	var validationErr *models.DataValidationError
	if errors.As(err, &validationErr) {
		sendError(c, http.StatusBadRequest, validationErr.Message, err)
		return
	}
	sendError(c, http.StatusInternalServerError, "Internal server error", err)
}

// checkContentType enforces that the request declared an application/json
// body. Media type parameters (charset) are tolerated.
func checkContentType(c *gin.Context) bool {
	header := c.GetHeader("Content-Type")
	if header == "" {
		sendError(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType != "application/json" {
		sendError(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json", err)
		return false
	}
	return true
}
