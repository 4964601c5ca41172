package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cat-exhibition/internal/service"
)

// multipart overhead allowed on top of the photo itself
const multipartSlack = 1 << 20

type catRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Description string `json:"description" binding:"required"`
	Age         *int   `json:"age" binding:"required,gte=0"`
	Breed       *int64 `json:"breed" binding:"required"`
}

func (r catRequest) input() service.CatInput {
	return service.CatInput{
		Name:        r.Name,
		Color:       r.Color,
		Description: r.Description,
		AgeMonths:   *r.Age,
		BreedID:     *r.Breed,
	}
}

type catPatchRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
	Age         *int    `json:"age" binding:"omitempty,gte=0"`
	Breed       *int64  `json:"breed"`
}

func (r catPatchRequest) patch() service.CatPatch {
	return service.CatPatch{
		Name:        r.Name,
		Color:       r.Color,
		Description: r.Description,
		AgeMonths:   r.Age,
		BreedID:     r.Breed,
	}
}

// listCats godoc
// @Summary List cats
// @Description Public listing, optionally narrowed to one breed.
// @Tags cats
// @Produce json
// @Param breed_id query int false "Breed ID"
// @Success 200 {array} CatResponse
// @Failure 400 {object} ErrorResponse "invalid breed_id"
// @Router /api/cats/ [get]
func (h *Handler) listCats(c *gin.Context) {
	var breedID int64
	if raw := c.Query("breed_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid breed_id"})
			return
		}
		breedID = id
	}

	cats, err := h.cats.List(c.Request.Context(), breedID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CatResponse, len(cats))
	for i := range cats {
		resp[i] = catToResponse(cats[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getCat godoc
// @Summary Get a cat
// @Tags cats
// @Produce json
// @Param id path int true "Cat ID"
// @Success 200 {object} CatResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cats/{id}/ [get]
func (h *Handler) getCat(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cat, err := h.cats.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catToResponse(*cat))
}

// createCat godoc
// @Summary Register a cat
// @Description The authenticated user becomes the owner.
// @Tags cats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body catRequest true "Cat"
// @Success 201 {object} CatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/cats/ [post]
func (h *Handler) createCat(c *gin.Context) {
	var req catRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cat, err := h.cats.Create(c.Request.Context(), currentUserID(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catToResponse(*cat))
}

// updateCat godoc
// @Summary Replace a cat
// @Tags cats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cat ID"
// @Param payload body catRequest true "Cat"
// @Success 200 {object} CatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "not the owner"
// @Failure 404 {object} ErrorResponse
// @Router /api/cats/{id}/ [put]
func (h *Handler) updateCat(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.cats.CheckOwner(c.Request.Context(), currentUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	var req catRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cat, err := h.cats.Update(c.Request.Context(), currentUserID(c), id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catToResponse(*cat))
}

// patchCat godoc
// @Summary Update some fields of a cat
// @Tags cats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cat ID"
// @Param payload body catPatchRequest true "Fields to change"
// @Success 200 {object} CatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "not the owner"
// @Failure 404 {object} ErrorResponse
// @Router /api/cats/{id}/ [patch]
func (h *Handler) patchCat(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.cats.CheckOwner(c.Request.Context(), currentUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	var req catPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cat, err := h.cats.Patch(c.Request.Context(), currentUserID(c), id, req.patch())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catToResponse(*cat))
}

// deleteCat godoc
// @Summary Delete a cat
// @Description Removes the cat together with its votes and photo.
// @Tags cats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cat ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "not the owner"
// @Failure 404 {object} ErrorResponse
// @Router /api/cats/{id}/ [delete]
func (h *Handler) deleteCat(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.cats.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "cat deleted"})
}

// uploadCatPhoto godoc
// @Summary Upload a cat photo
// @Description Replaces the cat's photo. Owner only.
// @Tags cats
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cat ID"
// @Param photo formData file true "JPEG, PNG, WebP or GIF image"
// @Success 200 {object} CatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "not the owner"
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "photo storage is not configured"
// @Router /api/cats/{id}/photo/ [put]
func (h *Handler) uploadCatPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.cats.CheckOwner(c.Request.Context(), currentUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPhotoBytes+multipartSlack)
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read photo"})
		return
	}
	defer file.Close()

	cat, err := h.cats.SetPhoto(c.Request.Context(), currentUserID(c), id, service.Photo{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catToResponse(*cat))
}

// getCatPhoto godoc
// @Summary Fetch a cat photo
// @Description Redirects to a short-lived presigned URL.
// @Tags cats
// @Param id path int true "Cat ID"
// @Success 302
// @Failure 404 {object} ErrorResponse "no such cat or no photo"
// @Failure 503 {object} ErrorResponse "photo storage is not configured"
// @Router /api/cats/{id}/photo/ [get]
func (h *Handler) getCatPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	url, err := h.cats.PhotoURL(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
