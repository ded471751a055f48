package controllers

import (
	"net/http"

	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoothController struct {
	Views *views.Registry
}

type CreateBoothInput struct {
	BoothNumber string `json:"booth_number" binding:"required"`
	BoothName   string `json:"booth_name" binding:"required"`
	Description string `json:"description"`
}

type UpdateBoothInput struct {
	BoothNumber string `json:"booth_number" binding:"required"`
	BoothName   string `json:"booth_name" binding:"required"`
	Description string `json:"description"`
}

type AssignStaffInput struct {
	StaffID *uuid.UUID `json:"staff_id"` // null clears the assignment
}

// GetBooths serves the admin projection: booths ordered by booth_number
// plus the derived badge counts.
func (b *BoothController) GetBooths(c *gin.Context) {
	view := b.Views.Admin()
	c.JSON(http.StatusOK, gin.H{
		"loading": view.Loading(),
		"booths":  view.Booths(),
		"badges":  view.Badges(),
	})
}

// GetBooth serves the detail projection for one booth.
func (b *BoothController) GetBooth(c *gin.Context) {
	boothID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booth id")
		return
	}

	view := b.Views.Detail(boothID)
	if view.Missing() {
		utils.RespondWithError(c, http.StatusNotFound, "Booth not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loading":       view.Loading(),
		"booth":         view.Booth(),
		"products":      view.Products(),
		"orders":        view.Orders(),
		"messages":      view.Messages(),
		"notifications": view.Notifications(),
	})
}

func (b *BoothController) CreateBooth(c *gin.Context) {
	var input CreateBoothInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booth, err := b.Views.Admin().CreateBooth(input.BoothNumber, input.BoothName, input.Description)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, booth)
}

func (b *BoothController) UpdateBooth(c *gin.Context) {
	boothID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booth id")
		return
	}

	var input UpdateBoothInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := b.Views.Admin().UpdateBooth(boothID, input.BoothNumber, input.BoothName, input.Description); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booth updated"})
}

// DeleteBooth requires ?confirm=true; without it the request is rejected
// before any store access.
func (b *BoothController) DeleteBooth(c *gin.Context) {
	boothID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booth id")
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := b.Views.Admin().DeleteBooth(boothID, confirmed); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booth deleted"})
}

func (b *BoothController) AssignStaff(c *gin.Context) {
	boothID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booth id")
		return
	}

	var input AssignStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := b.Views.Admin().AssignStaff(boothID, input.StaffID); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff assignment updated"})
}
