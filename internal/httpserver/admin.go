package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// validUUID guards :id params before they reach a uuid column; a malformed
// id would otherwise come back from pgx as a syntax error, not ErrNoRows.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func (h *handlers) listOrders(c *gin.Context) {
	filter := orderrepo.ListFilter{Status: c.Query("status")}
	if v := c.Query("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := c.Query("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}
	if filter.Status != "" && !domain.ValidOrderStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	orders, total, err := h.deps.Orders.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Printf("list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (h *handlers) getOrder(c *gin.Context) {
	if !validUUID(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	order, err := h.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Printf("get order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	if !validUUID(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if err := h.deps.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Printf("update order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *handlers) listSales(c *gin.Context) {
	sales, err := h.deps.Sales.List(c.Request.Context())
	if err != nil {
		h.logger.Printf("list all sales: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

type createSaleRequest struct {
	Name               string     `json:"name"`
	ProductID          *string    `json:"product_id,omitempty"`
	IsGlobal           bool       `json:"is_global"`
	DiscountPercentage int        `json:"discount_percentage"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            time.Time  `json:"end_date"`
}

func (h *handlers) createSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percentage must be between 0 and 100"})
		return
	}
	if !req.IsGlobal && req.ProductID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required for a product sale"})
		return
	}
	if req.EndDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date required"})
		return
	}

	sale := domain.Sale{
		Name:               req.Name,
		ProductID:          req.ProductID,
		IsGlobal:           req.IsGlobal,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           true,
		EndDate:            req.EndDate,
	}
	if req.IsGlobal {
		sale.ProductID = nil
	}
	if req.StartDate != nil {
		sale.StartDate = *req.StartDate
	}

	created, err := h.deps.Sales.Create(c.Request.Context(), sale)
	if err != nil {
		h.logger.Printf("create sale: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) deleteSale(c *gin.Context) {
	if !validUUID(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	if err := h.deps.Sales.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		h.logger.Printf("delete sale: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
