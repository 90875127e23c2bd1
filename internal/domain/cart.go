package domain

// GuestCartItem is one line in an unauthenticated shopper's cart. The JSON
// shape is the persisted wire format: a session key maps to an array of these.
//
// Two lines are the same entity iff (product_id, variation_id, color_id,
// size_id) are pairwise equal. A nil selector only matches another nil
// selector, never a present one.
type GuestCartItem struct {
	ProductID      string   `json:"product_id"`
	Quantity       int      `json:"quantity"`
	ProductName    string   `json:"product_name"`
	ProductPrice   float64  `json:"product_price"`
	ProductImage   string   `json:"product_image,omitempty"`
	VariationID    *string  `json:"variation_id,omitempty"`
	VariationName  *string  `json:"variation_name,omitempty"`
	VariationPrice *float64 `json:"variation_price,omitempty"`
	ColorID        *string  `json:"color_id,omitempty"`
	ColorName      *string  `json:"color_name,omitempty"`
	ColorCode      *string  `json:"color_code,omitempty"`
	ColorPrice     *float64 `json:"color_price,omitempty"`
	SizeID         *string  `json:"size_id,omitempty"`
	SizeName       *string  `json:"size_name,omitempty"`
	SizePrice      *float64 `json:"size_price,omitempty"`
	ShippingCost   *float64 `json:"shipping_cost,omitempty"`
}

// SameLine reports whether other belongs to the same cart line as i.
func (i GuestCartItem) SameLine(other GuestCartItem) bool {
	return i.ProductID == other.ProductID &&
		eqID(i.VariationID, other.VariationID) &&
		eqID(i.ColorID, other.ColorID) &&
		eqID(i.SizeID, other.SizeID)
}

func eqID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
