package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandlers serves liveness and readiness probes
type HealthHandlers struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *gorm.DB, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{db: db, logger: logger}
}

// Health handles GET /health
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
