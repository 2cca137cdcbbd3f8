package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wifiric-backend/internal/domain"
	contactsvc "wifiric-backend/internal/service/contact"
	"wifiric-backend/internal/service/notify"
)

func (h *handlers) createContact(c *gin.Context) {
	var in contactsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller := notify.Caller{Username: "Utilisateur inconnu"}
	if ident := identityFrom(c); ident != nil {
		in.UserID = &ident.UserID
		caller = notify.Caller{Username: ident.Username, DiscordID: ident.DiscordID}
	}

	msg, err := h.deps.Contacts.Create(c.Request.Context(), caller, in)
	if err != nil {
		if errors.Is(err, contactsvc.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("create contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create contact message"})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *handlers) listContactMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.deps.Contacts.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.logger.Printf("list contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contact messages"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) listOwnContactMessages(c *gin.Context) {
	ident := identityFrom(c)
	messages, err := h.deps.Contacts.ListByUser(c.Request.Context(), ident.UserID)
	if err != nil {
		h.logger.Printf("list contact messages for user %s: %v", ident.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contact messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *handlers) deleteOwnContactMessage(c *gin.Context) {
	ident := identityFrom(c)
	id := c.Param("id")
	if err := h.deps.Contacts.DeleteOwn(c.Request.Context(), ident.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact message not found"})
			return
		}
		h.logger.Printf("delete contact message %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contact message"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteContactMessage(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Contacts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact message not found"})
			return
		}
		h.logger.Printf("delete contact message %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contact message"})
		return
	}
	c.Status(http.StatusNoContent)
}
