package domain

import "time"

// RevokedToken records a refresh token that was invalidated by logout.
type RevokedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
}
