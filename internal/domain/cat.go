package domain

import "time"

// Cat represents an exhibited animal together with its cached rating.
type Cat struct {
	ID          int64
	Name        string
	Color       string
	Description string
	AgeMonths   int
	BreedID     int64
	OwnerID     int64
	Rating      float64
	TotalVotes  int64
	TotalMarks  int64
	PhotoKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by list/get queries.
	Breed *Breed
	Owner *User
}

// ApplyVote folds a new mark into the running tallies and recomputes the
// rating as the arithmetic mean of all marks received so far.
func (c *Cat) ApplyVote(value int) {
	c.TotalVotes++
	c.TotalMarks += int64(value)
	c.Rating = AverageRating(c.TotalMarks, c.TotalVotes)
}

// AverageRating returns marks/votes, or 0 when there are no votes.
func AverageRating(marks, votes int64) float64 {
	if votes <= 0 {
		return 0
	}
	return float64(marks) / float64(votes)
}

// OwnedBy reports whether userID owns the cat.
func (c *Cat) OwnedBy(userID int64) bool {
	return c.OwnerID == userID
}
