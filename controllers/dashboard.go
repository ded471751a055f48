package controllers

import (
	"net/http"

	"boothmarket-backend/store"
	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Views *views.Registry
	Store store.Store
}

// AdminOverview serves the admin dashboard: booths ordered by booth_number
// with the derived badge map. A booth absent from the map renders no badge.
func (d *DashboardController) AdminOverview(c *gin.Context) {
	view := d.Views.Admin()

	staff, err := d.Store.ListStaffProfiles()
	if err != nil {
		// Staff list is auxiliary; the dashboard still renders without it.
		staff = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"loading":       view.Loading(),
		"booths":        view.Booths(),
		"badges":        view.Badges(),
		"pendingOrders": view.PendingOrders(),
		"staff":         staff,
	})
}

// StaffOverview serves the booth-staff dashboard. An unassigned account
// gets an explicit unassigned payload, not an error.
func (d *DashboardController) StaffOverview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view := d.Views.Staff(userID)
	if view.Loading() {
		c.JSON(http.StatusOK, gin.H{"loading": true})
		return
	}
	if view.Unassigned() {
		c.JSON(http.StatusOK, gin.H{
			"loading":    false,
			"unassigned": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loading":       false,
		"unassigned":    false,
		"booth":         view.Booth(),
		"products":      view.Products(),
		"messages":      view.Messages(),
		"notifications": view.Notifications(),
	})
}
