// Package dto contains data transfer objects for application layer use cases.
package dto

// CartItem is one line of an add request.
// At most one of ParentID and ParentLineKey is set.
type CartItem struct {
	Properties    map[string]string `json:"properties,omitempty"`
	VariantID     string            `json:"id"`
	ParentID      string            `json:"parent_id,omitempty"`
	ParentLineKey string            `json:"parent_line_key,omitempty"`
	Quantity      int               `json:"quantity"`
}

// AddRequest appends lines to the cart.
type AddRequest struct {
	Items []CartItem `json:"items"`
}

// ChangeRequest rewrites the properties of an existing line.
type ChangeRequest struct {
	Properties map[string]string `json:"properties"`
	Line       string            `json:"id"`
}

// CartLine is a line as reported by the cart service.
type CartLine struct {
	Properties map[string]string `json:"properties,omitempty"`
	Key        string            `json:"key"`
	VariantID  string            `json:"variant_id"`
	Quantity   int               `json:"quantity"`
}

// CartSnapshot is the cart state returned by add and change.
// Error responses reuse the same body with Status and Description set.
type CartSnapshot struct {
	Token       string     `json:"token,omitempty"`
	Description string     `json:"description,omitempty"`
	Message     string     `json:"message,omitempty"`
	Items       []CartLine `json:"items,omitempty"`
	Status      int        `json:"status,omitempty"`
	ItemCount   int        `json:"item_count"`
	TotalPrice  int64      `json:"total_price"`
}

// IsError reports whether the body describes a cart-level failure.
func (c *CartSnapshot) IsError() bool {
	return c != nil && (c.Status >= 400 || c.Description != "")
}
