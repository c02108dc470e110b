package handlers

import (
	"log"
	"net/http"

	"gallery/auth"
	"gallery/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	req := LoginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ValidationError("email and password are required"))
		return
	}
	user, ok := models.VerifyCredentials(req.Email, req.Password)
	if !ok {
		// No cookie is set on failure
		c.JSON(http.StatusUnauthorized, BadCredentialsResponse)
		return
	}
	session := auth.LoadSession(c)
	if err := session.LoginUser(&user); err != nil {
		log.Printf("Cannot save session for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

func Logout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func Me(c *gin.Context) {
	user := auth.LoadSession(c).User()
	if user.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          gin.H{"id": user.ID, "email": user.Email},
	})
}
