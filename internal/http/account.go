package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cat-exhibition/internal/service"
)

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginRequest uses pointers so that an absent field (400) can be told apart
// from a present but wrong one (401).
type loginRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// signUp godoc
// @Summary Register a user
// @Description Creates an account and returns a fresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signUpRequest true "Credentials"
// @Success 201 {object} auth.Pair
// @Failure 400 {object} ErrorResponse "missing fields, weak password or taken username"
// @Router /api-auth/signup/ [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pair, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

// login godoc
// @Summary Log in
// @Description Exchanges credentials for an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signUpRequest true "Credentials"
// @Success 200 {object} auth.Pair
// @Failure 400 {object} ErrorResponse "missing fields"
// @Failure 401 {object} ErrorResponse "invalid credentials"
// @Router /api-auth/login/ [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// refresh godoc
// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body refreshRequest true "Refresh token"
// @Success 200 {object} AccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "revoked, expired or malformed token"
// @Router /api-auth/token/refresh/ [post]
func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	access, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccessResponse{Access: access})
}

// logout godoc
// @Summary Log out
// @Description Revokes a refresh token so it can no longer be exchanged.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body logoutRequest true "Refresh token"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "missing or invalid refresh token"
// @Router /api-auth/logout/ [post]
func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refresh token"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "successfully logged out"})
}
