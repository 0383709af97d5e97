package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/services"
)

type CartHandler struct {
	carts  *services.CartService
	logger *zap.Logger
}

func NewCartHandler(carts *services.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "CreateCart")
	defer span.End()

	var req models.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.Int64("user_id", req.UserID))

	cart, err := h.carts.CreateCart(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Cart created", zap.Int64("cart_id", cart.ID), zap.Int64("user_id", cart.UserID))
	c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "AddCartItem")
	defer span.End()

	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
		attribute.Int64("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	cart, err := h.carts.AddItem(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "RemoveCartItem")
	defer span.End()

	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(ctx, cartID, productID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "ClearCart")
	defer span.End()

	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}

	cart, err := h.carts.ClearCart(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, span := otel.Tracer("orders-service").Start(c.Request.Context(), "GetCart")
	defer span.End()

	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}

	cart, err := h.carts.GetByID(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// pathID parses a numeric path parameter, answering 400 itself on junk.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
