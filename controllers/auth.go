package controllers

import (
	"net/http"

	"boothmarket-backend/session"
	"boothmarket-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Sessions *session.Manager
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	account, token, err := a.Sessions.SignUp(input.Email, input.Password, input.FullName, input.Phone, input.Role)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":    account.ID,
			"email": account.Email,
		},
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	account, token, err := a.Sessions.SignIn(input.Email, input.Password)
	if err != nil {
		utils.RespondWithError(c, statusFor(err), "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    account.ID,
			"email": account.Email,
		},
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	token := utils.BearerToken(c.GetHeader("Authorization"))
	if err := a.Sessions.SignOut(token); err != nil {
		utils.RespondWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (a *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	account, err := a.Sessions.Store().GetAccount(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	// Profile errors resolve to null, never block the session payload.
	profile, err := a.Sessions.Store().GetProfile(userID)
	if err != nil {
		profile = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    account.ID,
			"email": account.Email,
		},
		"profile": profile,
	})
}

// Middleware resolves the bearer token through the session manager so
// revoked tokens stop working immediately.
func (a *AuthController) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		accountID, role, err := a.Sessions.Resolve(utils.BearerToken(header))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userId", accountID.String())
		c.Set("role", role)
		c.Next()
	}
}
