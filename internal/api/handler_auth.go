package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/internal/auth"
	"labtrack-backend/internal/model"
	"labtrack-backend/internal/mw"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a new account. It is open to anyone; the role is always
// student, whatever the request body claims.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password, h.authCfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleStudent,
	}
	if err := h.db().Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"username": "A user with that username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token pair plus the role and
// username, which the frontend uses for its landing redirect.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user model.User
	err := h.db().Where("username = ?", req.Username).First(&user).Error
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	pair, err := h.tokens.IssuePair(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":   pair.Access,
		"refresh":  pair.Refresh,
		"role":     user.Role,
		"username": user.Username,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken exchanges a live refresh token for a fresh pair. The used
// token is invalidated.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.tokens.Redeem(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	var user model.User
	if err := h.db().First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return
	}

	pair, err := h.tokens.IssuePair(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// RedirectAfterLogin returns the role-based default landing path. This is a
// UX hint only; it carries no authorization meaning.
func (h *Handler) RedirectAfterLogin(c *gin.Context) {
	actor := mw.Actor(c)

	var target string
	switch actor.Role {
	case model.RoleStudent:
		target = "/maintenance"
	case model.RoleAdmin:
		target = "/inventory"
	default:
		target = "/"
	}
	c.JSON(http.StatusOK, gin.H{"redirect": target})
}
