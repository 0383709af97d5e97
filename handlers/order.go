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
	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/services"
)

const orderEventsTopic = "order_events"

type OrderHandler struct {
	orders   *services.OrderService
	producer sarama.SyncProducer
	logger   *zap.Logger
}

func NewOrderHandler(orders *services.OrderService, producer sarama.SyncProducer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, producer: producer, logger: logger}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "CreateOrder")
	defer span.End()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.Int64("cart_id", req.CartID))

	order, err := h.orders.CreateFromCart(ctx, req.CartID, req.DeliveryAddress)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	span.SetAttributes(attribute.Int64("order.id", order.ID))

	h.publish(ctx, models.OrderEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    order.Status,
		EventType: "order_created",
	})

	h.logger.Info("Order created", zap.Int64("order_id", order.ID))
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "GetOrder")
	defer span.End()

	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int64("order.id", orderID))

	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) MarkAsPaid(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "MarkOrderPaid")
	defer span.End()

	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.MarkAsPaid(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.publish(ctx, models.OrderEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    order.Status,
		EventType: "order_paid",
	})

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "CancelOrder")
	defer span.End()

	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.Cancel(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.publish(ctx, models.OrderEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    order.Status,
		EventType: "order_cancelled",
	})

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) publish(ctx context.Context, event models.OrderEvent) {
	if h.producer == nil {
		return
	}
	if err := kafka.PublishEvent(ctx, h.producer, orderEventsTopic, event, h.logger); err != nil {
		// Event delivery never fails the request.
		h.logger.Error("Failed to publish order event", zap.Error(err))
	}
}
