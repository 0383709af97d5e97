package models

import "time"

// CartItem is one line of a cart, keyed by ProductID. There is at most
// one item per product; adding the same product again merges quantities.
type CartItem struct {
	ProductID          int64   `json:"product_id"`
	ProductName        string  `json:"product_name"`
	ProductDescription string  `json:"product_description"`
	Quantity           int     `json:"quantity"`
	Price              float64 `json:"price"`
}

type Cart struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	UserEmail   string     `json:"user_email"`
	UserName    string     `json:"user_name"`
	UserPhone   string     `json:"user_phone"`
	UserAddress string     `json:"user_address"`
	Items       []CartItem `json:"items"`
	Total       float64    `json:"total"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewCart(user UserSnapshot) *Cart {
	now := time.Now()
	return &Cart{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.Name,
		UserPhone:   user.Phone,
		UserAddress: user.Address,
		Items:       []CartItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpsertItem merges the item into the cart. An existing line for the same
// product gets its name, description and price refreshed to the latest
// snapshot and its quantity incremented; otherwise a new line is appended.
func (c *Cart) UpsertItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].ProductName = item.ProductName
			c.Items[i].ProductDescription = item.ProductDescription
			c.Items[i].Price = item.Price
			c.Items[i].Quantity += item.Quantity
			c.recalculateTotal()
			c.UpdatedAt = time.Now()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recalculateTotal()
	c.UpdatedAt = time.Now()
}

// RemoveItem deletes any line matching productID. Absent lines are a no-op.
func (c *Cart) RemoveItem(productID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.recalculateTotal()
	c.UpdatedAt = time.Now()
}

func (c *Cart) ClearItems() {
	c.Items = []CartItem{}
	c.Total = 0
	c.UpdatedAt = time.Now()
}

func (c *Cart) recalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}

type CreateCartRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}
