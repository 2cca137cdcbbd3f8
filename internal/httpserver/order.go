package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiric-backend/internal/domain"
	ordersvc "wifiric-backend/internal/service/order"
)

func (h *handlers) orderAvailability(c *gin.Context) {
	ref := c.Param("ref")
	available, err := h.deps.Orders.Available(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, ordersvc.ErrInvalidRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("check availability %s: %v", ref, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *handlers) createOrder(c *gin.Context) {
	var in ordersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ident := identityFrom(c)
	in.UserID = &ident.UserID
	if in.DiscordUsername == "" {
		in.DiscordUsername = ident.Username
	}

	order, err := h.deps.Orders.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrRefTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ordersvc.ErrInvalidRef), errors.Is(err, ordersvc.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Printf("create order %s: %v", in.OrderRef, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) getOrder(c *gin.Context) {
	ref := c.Param("ref")
	order, err := h.deps.Orders.GetByRef(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Printf("get order %s: %v", ref, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order"})
		return
	}

	ident := identityFrom(c)
	owned := order.UserID != nil && *order.UserID == ident.UserID
	if !owned && !ident.Admin {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	ident := identityFrom(c)
	orders, err := h.deps.Orders.ListByUser(c.Request.Context(), ident.UserID)
	if err != nil {
		h.logger.Printf("list orders for %s: %v", ident.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) setOrderStatus(c *gin.Context) {
	ref := c.Param("ref")
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	err := h.deps.Orders.SetStatus(c.Request.Context(), ref, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, ordersvc.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Printf("set status for order %s: %v", ref, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": ref, "status": req.Status})
}
