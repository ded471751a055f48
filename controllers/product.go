package controllers

import (
	"net/http"

	"boothmarket-backend/models"
	"boothmarket-backend/store"
	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductController struct {
	Views *views.Registry
	Store store.Store
}

type CreateProductInput struct {
	BoothID uuid.UUID `json:"booth_id" binding:"required"`
	Name    string    `json:"name" binding:"required"`
	Price   float64   `json:"price"`
}

type UpdateProductInput struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price"`
	IsOutOfStock bool    `json:"is_out_of_stock"`
}

func (p *ProductController) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product, err := p.Views.Admin().CreateProduct(input.BoothID, input.Name, input.Price)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (p *ProductController) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	existing, err := p.Store.GetProduct(productID)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}

	product := &models.Product{
		ID:           productID,
		BoothID:      existing.BoothID,
		Name:         input.Name,
		Price:        input.Price,
		IsOutOfStock: input.IsOutOfStock,
	}
	if err := p.Views.Admin().UpdateProduct(product); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct requires ?confirm=true, same gate as booth deletion.
func (p *ProductController) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := p.Views.Admin().DeleteProduct(productID, confirmed); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ToggleStock flips is_out_of_stock on a product in the staff's own booth.
func (p *ProductController) ToggleStock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := p.Views.Staff(userID).ToggleOutOfStock(productID); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock status updated"})
}
