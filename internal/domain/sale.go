package domain

import "time"

// Sale is one promotional discount. Product-specific sales carry a
// ProductID; store-wide sales have IsGlobal set and no ProductID.
type Sale struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name,omitempty"`
	ProductID          *string   `json:"product_id,omitempty"`
	IsGlobal           bool      `json:"is_global"`
	DiscountPercentage int       `json:"discount_percentage"`
	IsActive           bool      `json:"is_active"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	CreatedAt          time.Time `json:"created_at"`
}
