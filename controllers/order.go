package controllers

import (
	"net/http"

	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	Views *views.Registry
}

type CreateOrderInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Notes     string    `json:"notes"`
}

type ResolveOrderInput struct {
	Status string `json:"status" binding:"required"` // completed or cancelled
}

// CreateOrder raises a restock request for the staff's booth.
func (o *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := o.Views.Staff(userID).CreateOrder(input.ProductID, input.Quantity, input.Notes)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetPendingOrders serves the admin's pending restock queue.
func (o *OrderController) GetPendingOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": o.Views.Admin().PendingOrders()})
}

// ResolveOrder completes or cancels a pending order. Transitions out of a
// terminal state are rejected by the store.
func (o *OrderController) ResolveOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	var input ResolveOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := o.Views.Admin().ResolveOrder(orderID, input.Status); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order " + input.Status})
}
