package models

import "time"

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is an immutable copy of a cart line taken at order creation.
// Later catalog changes never touch it.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewOrderFromCart deep-copies the cart lines and recomputes the total
// from the copy.
func NewOrderFromCart(cart *Cart, deliveryAddress string) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, ci := range cart.Items {
		items = append(items, OrderItem{
			ProductID:   ci.ProductID,
			ProductName: ci.ProductName,
			Quantity:    ci.Quantity,
			Price:       ci.Price,
		})
		total += ci.Price * float64(ci.Quantity)
	}
	now := time.Now()
	return &Order{
		UserID:          cart.UserID,
		DeliveryAddress: deliveryAddress,
		Items:           items,
		Total:           total,
		Status:          OrderStatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (o *Order) MarkAsPaid() {
	o.Status = OrderStatusPaid
	o.UpdatedAt = time.Now()
}

func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
}

type CreateOrderRequest struct {
	CartID          int64  `json:"cart_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

type OrderEvent struct {
	OrderID   int64       `json:"order_id"`
	UserID    int64       `json:"user_id"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	EventType string      `json:"event_type"` // order_created, order_paid, order_cancelled
}
