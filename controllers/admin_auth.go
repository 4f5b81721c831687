package controllers

import (
	"os"
	"time"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminLogin authenticates an operations user and issues a JWT.
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Email and password are required", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.LogError("Password mismatch for admin: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		utils.LogError("Failed to sign token: %v", err)
		utils.InternalServerError(c, "Failed to create session token", nil)
		return
	}

	utils.LogInfo("Admin %s logged in", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": signed,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}
