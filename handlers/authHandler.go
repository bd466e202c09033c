package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"
	"ClinicCare/utils"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// Login authenticates the user and returns a token pair. Blacklisted
// accounts are rejected even with valid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Username, credentials.Password)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"role":         user.Role.Name,
	})
}

// RefreshToken issues a fresh access token from a still-valid one.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := c.DefaultQuery("accessToken", "")
	if token == "" {
		c.JSON(400, gin.H{"error": "access token is required"})
		return
	}

	claims, err := utils.ValidateToken(token, "Admin", "Doctor", "Patient")
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid access token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate access token: %v", err)})
		return
	}

	c.JSON(200, gin.H{"accessToken": accessToken})
}

// Logoff clears the auth cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// GetUserProfile returns the authenticated user's account record.
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"user": user})
}

// SendResetCode emails a password reset code to the account's address.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.SendResetCode(c.Request.Context(), data.Email); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(200)
}

// ChangePassword verifies the emailed reset code and sets the new password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ChangePassword(c.Request.Context(), data.Email, data.Code, data.NewPassword); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(200)
}
