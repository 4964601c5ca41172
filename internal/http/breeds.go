package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type breedRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// listBreeds godoc
// @Summary List breeds
// @Tags breeds
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BreedResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/breeds/ [get]
func (h *Handler) listBreeds(c *gin.Context) {
	breeds, err := h.breeds.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]BreedResponse, len(breeds))
	for i := range breeds {
		resp[i] = breedToResponse(breeds[i])
	}
	c.JSON(http.StatusOK, resp)
}

// createBreed godoc
// @Summary Add a breed
// @Tags breeds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body breedRequest true "Breed"
// @Success 201 {object} BreedResponse
// @Failure 400 {object} ErrorResponse "invalid or duplicate name"
// @Failure 401 {object} ErrorResponse
// @Router /api/breeds/ [post]
func (h *Handler) createBreed(c *gin.Context) {
	var req breedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	breed, err := h.breeds.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, breedToResponse(*breed))
}

// getBreed godoc
// @Summary Get a breed
// @Tags breeds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Breed ID"
// @Success 200 {object} BreedResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/breeds/{id}/ [get]
func (h *Handler) getBreed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	breed, err := h.breeds.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breedToResponse(*breed))
}
