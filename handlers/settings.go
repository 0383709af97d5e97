package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/services"
)

type SettingsHandler struct {
	settings *services.SettingsService
	logger   *zap.Logger
}

func NewSettingsHandler(settings *services.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "GetOrderSettings")
	defer span.End()

	settings, err := h.settings.GetSettings(ctx)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "UpdateOrderSettings")
	defer span.End()

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.UpdateSettings(ctx, req)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Order settings updated",
		zap.Float64("card_rejection_probability", settings.CardRejectionProbability),
		zap.Int("payment_retry_attempts", settings.PaymentRetryAttempts),
	)
	c.JSON(http.StatusOK, settings)
}
