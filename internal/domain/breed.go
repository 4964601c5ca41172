package domain

// Breed is an entry of the breed catalog cats are grouped by.
type Breed struct {
	ID          int64
	Name        string
	Description string
}
