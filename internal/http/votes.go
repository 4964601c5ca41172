package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type voteRequest struct {
	Value *int `json:"value" binding:"required"`
}

// vote godoc
// @Summary Rate a cat
// @Description Records the caller's single mark (0-5) for a cat and returns the recomputed rating.
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cat_id path int true "Cat ID"
// @Param payload body voteRequest true "Mark"
// @Success 200 {object} VoteResultResponse
// @Failure 400 {object} ErrorResponse "value out of range"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "cat not found"
// @Failure 409 {object} ErrorResponse "already voted"
// @Router /api/voting/{cat_id}/ [post]
func (h *Handler) vote(c *gin.Context) {
	catID, ok := parseID(c, "cat_id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cat, err := h.votes.Vote(c.Request.Context(), currentUserID(c), catID, *req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VoteResultResponse{
		Message:    "vote recorded",
		Cat:        cat.ID,
		Rating:     cat.Rating,
		TotalVotes: cat.TotalVotes,
	})
}

// listVotes godoc
// @Summary List the votes cast for a cat
// @Tags voting
// @Produce json
// @Security BearerAuth
// @Param cat_id path int true "Cat ID"
// @Success 200 {array} VoteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/voting/{cat_id}/ [get]
func (h *Handler) listVotes(c *gin.Context) {
	catID, ok := parseID(c, "cat_id")
	if !ok {
		return
	}

	votes, err := h.votes.ListByCat(c.Request.Context(), catID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]VoteResponse, len(votes))
	for i := range votes {
		resp[i] = voteToResponse(votes[i])
	}
	c.JSON(http.StatusOK, resp)
}
