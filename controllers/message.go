package controllers

import (
	"net/http"

	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageController struct {
	Views *views.Registry
}

type SendMessageInput struct {
	ToBoothID *uuid.UUID `json:"to_booth_id"` // null broadcasts to all booths
	Message   string     `json:"message" binding:"required"`
}

// SendMessage lets the admin message one booth or broadcast to all.
func (m *MessageController) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := m.Views.Admin().SendMessage(userID, input.ToBoothID, input.Message); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent"})
}

// GetMessages serves the messages visible to the staff's booth.
func (m *MessageController) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view := m.Views.Staff(userID)
	c.JSON(http.StatusOK, gin.H{
		"loading":  view.Loading(),
		"messages": view.Messages(),
	})
}

// MarkRead flips is_read on one message; only the receiving staff view
// calls this.
func (m *MessageController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	if err := m.Views.Staff(userID).MarkMessageRead(messageID); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
