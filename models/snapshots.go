package models

// UserSnapshot is the user contact data captured from the users service
// when a cart is created.
type UserSnapshot struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProductSnapshot is the catalog view of a product at the moment an item
// is added to a cart.
type ProductSnapshot struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
