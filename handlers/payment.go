package handlers

import (
	"context"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/kafka"
	"github.com/gebrayel/ecommerce-simulator/middleware"
	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
	producer sarama.SyncProducer
	logger   *zap.Logger
}

func NewPaymentHandler(payments *services.PaymentService, producer sarama.SyncProducer, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, producer: producer, logger: logger}
}

func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "RegisterPayment")
	defer span.End()

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.AuthUserID(c)
	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("order.id", req.OrderID),
		attribute.Float64("amount", req.Amount),
	)

	payment, err := h.payments.RegisterPayment(ctx, userID, req.OrderID, req.Amount, req.Method, req.CardToken)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	span.SetAttributes(
		attribute.Int64("payment.id", payment.ID),
		attribute.String("payment.status", string(payment.Status)),
		attribute.Int("payment.attempts", payment.Attempts),
	)
	middleware.RecordPaymentProcessed(string(payment.Status), payment.Attempts)

	h.publish(ctx, payment)

	h.logger.Info("Payment registered",
		zap.String("trace_id", middleware.GetTraceID(ctx)),
		zap.Int64("payment_id", payment.ID),
		zap.Int64("order_id", payment.OrderID),
		zap.String("status", string(payment.Status)),
		zap.Int("attempts", payment.Attempts),
	)
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) MarkAsCompleted(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "MarkPaymentCompleted")
	defer span.End()

	paymentID, ok := pathID(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.payments.MarkAsCompleted(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.publish(ctx, payment)
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) MarkAsFailed(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "MarkPaymentFailed")
	defer span.End()

	paymentID, ok := pathID(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.payments.MarkAsFailed(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.publish(ctx, payment)
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "GetPayment")
	defer span.End()

	paymentID, ok := pathID(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.payments.FindByID(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) publish(ctx context.Context, payment *models.Payment) {
	if h.producer == nil {
		return
	}

	eventType := "payment_failed"
	if payment.Status == models.PaymentStatusCompleted {
		eventType = "payment_completed"
	}

	event := models.PaymentEvent{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Status:    payment.Status,
		Attempts:  payment.Attempts,
		EventType: eventType,
	}
	if err := kafka.PublishEvent(ctx, h.producer, orderEventsTopic, event, h.logger); err != nil {
		// Event delivery never fails the request.
		h.logger.Error("Failed to publish payment event", zap.Error(err))
	}
}
