package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/config"
	"labtrack-backend/internal/auth"
	"labtrack-backend/internal/notification"
	"labtrack-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	tokens  *auth.TokenService
	webpush *webpush.Options
	workers *notification.WorkerPool
	authCfg *config.AuthConfig
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, tokens *auth.TokenService, webpushOptions *webpush.Options, workers *notification.WorkerPool, authCfg *config.AuthConfig) *Handler {
	return &Handler{
		store:   s,
		tokens:  tokens,
		webpush: webpushOptions,
		workers: workers,
		authCfg: authCfg,
	}
}

func (h *Handler) db() *gorm.DB {
	return h.store.DB()
}

// pathID parses the :id (or other named) path parameter. A non-numeric value
// aborts with 400 and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// storeError maps store-layer failures onto response status codes.
func storeError(c *gin.Context, err error) {
	var ref *store.RefError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrAlreadyFixed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &ref):
		c.JSON(http.StatusBadRequest, gin.H{ref.Field: humanRef(ref.Field)})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate value for a unique field"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func humanRef(field string) string {
	switch field {
	case "lab":
		return "Lab not found"
	case "pc":
		return "PC not found"
	case "equipment":
		return "Equipment not found"
	default:
		return "invalid value"
	}
}

// normalizeSerial maps empty serial numbers to NULL so the unique index only
// applies when a serial is actually present.
func normalizeSerial(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
