package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-io/devconnect/internal/auth"
	"github.com/devconnect-io/devconnect/internal/gravatar"
	"github.com/devconnect-io/devconnect/internal/models"
	"github.com/devconnect-io/devconnect/internal/store"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Email is required",
	"Password": "Password must be at least 5 characters long and required",
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

var loginMessages = map[string]string{
	"Email":    "Email is required",
	"Password": "Password is required",
}

// handleRegister creates an account and answers with a session token.
// A duplicate email is rejected before any write happens; the unique
// index catches the race where two registrations pass the lookup.
func (h *Handler) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req, registerMessages) {
		return
	}

	ctx := c.Request.Context()

	_, err := h.users.FindByEmail(ctx, req.Email)
	if err == nil {
		writeErrors(c, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.serverError(c, "register", err)
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(c, "register", err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Avatar:   gravatar.URL(req.Email),
		Date:     time.Now().UTC(),
	}

	if err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeErrors(c, http.StatusBadRequest, "User already exists")
			return
		}
		h.serverError(c, "register", err)
		return
	}

	token, _, err := h.auth.GenerateToken(user.ID.Hex())
	if err != nil {
		h.serverError(c, "register", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleLogin authenticates by email and password. Unknown email and
// wrong password produce byte-identical responses.
func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req, loginMessages) {
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErrors(c, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		h.serverError(c, "login", err)
		return
	}

	if err := h.auth.CheckPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeErrors(c, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		h.serverError(c, "login", err)
		return
	}

	token, _, err := h.auth.GenerateToken(user.ID.Hex())
	if err != nil {
		h.serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleGetAuthedUser returns the caller's account without the password
// hash.
func (h *Handler) handleGetAuthedUser(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), callerID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(c, "auth", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
