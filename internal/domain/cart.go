package domain

// CartItem is one persisted row: a distinct product in a user's cart plus its
// quantity. Rows never exist with quantity 0; a quantity reaching 0 deletes
// the row instead.
type CartItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
	Username  string  `json:"username"`
}

// NewCartItem maps a catalog product to a fresh cart row for the given user.
func NewCartItem(p Product, username string) CartItem {
	return CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  1,
		ImageURL:  p.Image,
		Username:  username,
	}
}
