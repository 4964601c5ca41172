package http

import (
	"time"

	"cat-exhibition/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

type BreedResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type OwnerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type CatResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Color       string         `json:"color"`
	Description string         `json:"description"`
	Age         int            `json:"age"`
	Breed       int64          `json:"breed"`
	Owner       int64          `json:"owner"`
	Rating      float64        `json:"rating"`
	TotalVotes  int64          `json:"total_votes"`
	HasPhoto    bool           `json:"has_photo"`
	BreedInfo   *BreedResponse `json:"breed_info,omitempty"`
	OwnerInfo   *OwnerResponse `json:"owner_info,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

type VoteResponse struct {
	ID        int64  `json:"id"`
	User      int64  `json:"user"`
	Cat       int64  `json:"cat"`
	Value     int    `json:"value"`
	CreatedAt string `json:"created_at"`
}

type VoteResultResponse struct {
	Message    string  `json:"message"`
	Cat        int64   `json:"cat"`
	Rating     float64 `json:"rating"`
	TotalVotes int64   `json:"total_votes"`
}

func breedToResponse(breed domain.Breed) BreedResponse {
	return BreedResponse{
		ID:          breed.ID,
		Name:        breed.Name,
		Description: breed.Description,
	}
}

func catToResponse(cat domain.Cat) CatResponse {
	resp := CatResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Color:       cat.Color,
		Description: cat.Description,
		Age:         cat.AgeMonths,
		Breed:       cat.BreedID,
		Owner:       cat.OwnerID,
		Rating:      cat.Rating,
		TotalVotes:  cat.TotalVotes,
		HasPhoto:    cat.PhotoKey != "",
		CreatedAt:   formatTime(cat.CreatedAt),
		UpdatedAt:   formatTime(cat.UpdatedAt),
	}
	if cat.Breed != nil {
		breed := breedToResponse(*cat.Breed)
		resp.BreedInfo = &breed
	}
	if cat.Owner != nil {
		resp.OwnerInfo = &OwnerResponse{ID: cat.Owner.ID, Username: cat.Owner.Username}
	}
	return resp
}

func voteToResponse(vote domain.Vote) VoteResponse {
	return VoteResponse{
		ID:        vote.ID,
		User:      vote.UserID,
		Cat:       vote.CatID,
		Value:     vote.Value,
		CreatedAt: formatTime(vote.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
