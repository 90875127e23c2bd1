package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type cartLineView struct {
	domain.GuestCartItem
	FinalPrice float64 `json:"final_price"`
	Discount   *int    `json:"discount,omitempty"`
	LineTotal  float64 `json:"line_total"`
}

type cartView struct {
	Items    []cartLineView `json:"items"`
	Subtotal float64        `json:"subtotal"`
}

// cartResponse prices the stored lines against the sales active right now.
// The base comes from the add-time snapshot; this is display only, checkout
// re-prices every line from the catalog.
func (h *handlers) cartResponse(c *gin.Context) (cartView, bool) {
	items := h.cart(c).Items(c.Request.Context())

	sales, err := h.deps.Catalog.ActiveSales(c.Request.Context())
	if err != nil {
		h.logger.Printf("cart pricing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return cartView{}, false
	}

	view := cartView{Items: make([]cartLineView, 0, len(items))}
	for _, item := range items {
		productSale, globalSale := pricing.Select(sales, item.ProductID)
		res := pricing.Resolve(lineBase(item), productSale, globalSale, true)
		lineTotal := res.FinalPrice * float64(item.Quantity)
		view.Items = append(view.Items, cartLineView{
			GuestCartItem: item,
			FinalPrice:    res.FinalPrice,
			Discount:      res.Discount,
			LineTotal:     lineTotal,
		})
		view.Subtotal += lineTotal
	}
	return view, true
}

// lineBase picks the unit price from the line's snapshot: a color price wins
// when set above zero, then variation, then size, then the product price.
func lineBase(item domain.GuestCartItem) float64 {
	if item.ColorPrice != nil && *item.ColorPrice > 0 {
		return *item.ColorPrice
	}
	if item.VariationPrice != nil {
		return *item.VariationPrice
	}
	if item.SizePrice != nil {
		return *item.SizePrice
	}
	return item.ProductPrice
}

func (h *handlers) getCart(c *gin.Context) {
	view, ok := h.cartResponse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var item domain.GuestCartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item"})
		return
	}
	if item.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	h.cart(c).Add(c.Request.Context(), item)

	view, ok := h.cartResponse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateCartRequest struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	VariationID *string `json:"variation_id,omitempty"`
	ColorID     *string `json:"color_id,omitempty"`
	SizeID      *string `json:"size_id,omitempty"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}

	h.cart(c).UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity, req.VariationID, req.ColorID, req.SizeID)

	view, ok := h.cartResponse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}

	h.cart(c).Remove(c.Request.Context(), req.ProductID, req.VariationID, req.ColorID, req.SizeID)

	view, ok := h.cartResponse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) clearCart(c *gin.Context) {
	h.cart(c).Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartView{Items: []cartLineView{}})
}
