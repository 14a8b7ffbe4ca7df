package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/SarthakSwaroop/Finance/internal/auth"
	"github.com/SarthakSwaroop/Finance/internal/ledger"
	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUser handles POST /api/register
func (h *Handler) RegisterUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.Password != req.Confirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and matching password confirmation are required"})
		return
	}

	count, err := h.store.CountUsersWithUsername(c.Request.Context(), username)
	if err != nil {
		tradeError(c, err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), username, hash, h.startingCash)
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		tradeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    user,
	})
}

// Login handles POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username and/or password"})
			return
		}
		tradeError(c, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username and/or password"})
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Printf("generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// CheckUsername handles GET /api/check?username=name and reports whether
// the name is free to register.
func (h *Handler) CheckUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	count, err := h.store.CountUsersWithUsername(c.Request.Context(), username)
	if err != nil {
		tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": count == 0})
}
