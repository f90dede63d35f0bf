package domain

// OrderSnapshot is the order/pricing state fetched from the backend.
// It is replaced wholesale on every successful fetch and never partially mutated.
type OrderSnapshot struct {
	ID       string `json:"_id"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type OrderUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
}

type OrderAddon struct {
	ID         int64 `json:"id"`
	Count      int   `json:"count"`
	CategoryID int64 `json:"category_id"`
}

type OrderProduct struct {
	ID     int64        `json:"id"`
	Count  int          `json:"count"`
	Pointz bool         `json:"pointz,omitempty"`
	Notes  string       `json:"notes,omitempty"`
	Addons []OrderAddon `json:"addons,omitempty"`
}

// OrderRequest is the payload for the order creation endpoint.
type OrderRequest struct {
	User     OrderUser      `json:"user"`
	Products []OrderProduct `json:"products"`
	Tip      int64          `json:"tip"`
}
