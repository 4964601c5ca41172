package domain

import "time"

const (
	MinVoteValue = 0
	MaxVoteValue = 5
)

// Vote is a single user's mark for a cat. A user votes for a cat at most once.
type Vote struct {
	ID        int64
	UserID    int64
	CatID     int64
	Value     int
	CreatedAt time.Time
}

// ValidVoteValue reports whether v is an acceptable mark.
func ValidVoteValue(v int) bool {
	return v >= MinVoteValue && v <= MaxVoteValue
}
