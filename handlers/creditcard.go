package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/middleware"
	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/services"
)

type CreditCardHandler struct {
	cards  *services.CreditCardService
	logger *zap.Logger
}

func NewCreditCardHandler(cards *services.CreditCardService, logger *zap.Logger) *CreditCardHandler {
	return &CreditCardHandler{cards: cards, logger: logger}
}

func (h *CreditCardHandler) RegisterCard(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "RegisterCard")
	defer span.End()

	var req models.RegisterCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.AuthUserID(c)
	span.SetAttributes(attribute.Int64("user_id", userID))

	card, err := h.cards.RegisterCard(ctx, userID, req.CardNumber, req.CVV, req.ExpiryMonth, req.ExpiryYear)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	// The response is the only place the plain token ever appears.
	h.logger.Info("Card registered",
		zap.String("trace_id", middleware.GetTraceID(ctx)),
		zap.Int64("card_id", card.ID),
		zap.Int64("user_id", userID),
		zap.String("last_four", card.LastFourDigits),
	)
	c.JSON(http.StatusCreated, card)
}

func (h *CreditCardHandler) ListUserCards(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "ListUserCards")
	defer span.End()

	userID := middleware.AuthUserID(c)
	span.SetAttributes(attribute.Int64("user_id", userID))

	cards, err := h.cards.FindByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}
	if cards == nil {
		cards = []models.CreditCard{}
	}

	c.JSON(http.StatusOK, cards)
}
