package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reviewsvc "wifiric-backend/internal/service/review"
)

func (h *handlers) createReview(c *gin.Context) {
	var in reviewsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ident := identityFrom(c)
	review, err := h.deps.Reviews.Create(c.Request.Context(), ident.UserID, in)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("create review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *handlers) listReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, err := h.deps.Reviews.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Printf("list reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
