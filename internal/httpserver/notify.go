package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiric-backend/internal/service/notify"
)

func callerFrom(c *gin.Context) notify.Caller {
	ident := identityFrom(c)
	return notify.Caller{Username: ident.Username, DiscordID: ident.DiscordID}
}

func notifyErrorResponse(c *gin.Context, err error) {
	msg := "notification failed"
	switch {
	case errors.Is(err, notify.ErrGuildUnavailable):
		msg = "unable to resolve discord guild"
	case errors.Is(err, notify.ErrChannelCreate):
		msg = "unable to create discord channel"
	case errors.Is(err, notify.ErrMessageSend):
		msg = "unable to post discord message"
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   msg,
		"details": err.Error(),
	})
}

func notifySuccessResponse(c *gin.Context, res *notify.Result) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"channelId":   res.ChannelID,
		"channelName": res.ChannelName,
	})
}

func (h *handlers) notifyOrder(c *gin.Context) {
	var req notify.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	res, err := h.deps.Notify.NotifyOrder(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		h.logger.Printf("notify order %s: %v", req.OrderRef, err)
		notifyErrorResponse(c, err)
		return
	}
	notifySuccessResponse(c, res)
}

func (h *handlers) notifyContact(c *gin.Context) {
	var req notify.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	res, err := h.deps.Notify.NotifyContact(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		h.logger.Printf("notify contact: %v", err)
		notifyErrorResponse(c, err)
		return
	}
	notifySuccessResponse(c, res)
}

func (h *handlers) notifyDeletion(c *gin.Context) {
	var req notify.DeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	res, err := h.deps.Notify.NotifyDeletion(c.Request.Context(), req)
	if err != nil {
		h.logger.Printf("notify deletion %s/%s: %v", req.Type, req.ItemID, err)
		notifyErrorResponse(c, err)
		return
	}
	notifySuccessResponse(c, res)
}
