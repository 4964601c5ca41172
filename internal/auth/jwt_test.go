package auth

import (
	"errors"
	"testing"
	"time"

	"cat-exhibition/internal/domain"
)

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", 5*time.Minute, 24*time.Hour)
	user := domain.User{ID: 7, Username: "ivanov"}

	pair, err := issuer.IssuePair(user)
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	access, err := issuer.Parse(pair.Access, AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if id, _ := access.UserID(); id != 7 || access.Username != "ivanov" {
		t.Fatalf("unexpected access claims %+v", access)
	}

	refresh, err := issuer.Parse(pair.Refresh, RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.ID == access.ID {
		t.Fatalf("expected distinct token ids")
	}
	if !refresh.ExpiresAt.After(access.ExpiresAt.Time) {
		t.Fatalf("refresh token should outlive access token")
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	pair, err := issuer.IssuePair(domain.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	if _, err := issuer.Parse(pair.Refresh, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
	if _, err := issuer.Parse(pair.Access, RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	pair, err := issuer.IssuePair(domain.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := issuer.Parse(pair.Access, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired access token to fail, got %v", err)
	}
	if _, err := issuer.Parse(pair.Refresh, RefreshToken); err != nil {
		t.Fatalf("refresh token should still be valid: %v", err)
	}

	other := NewIssuer("other-secret", time.Minute, time.Hour)
	other.now = issuer.now
	if _, err := other.Parse(pair.Refresh, RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature mismatch to fail, got %v", err)
	}

	if _, err := issuer.Parse("not-a-token", AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected garbage to fail, got %v", err)
	}
}

func TestIssueAccessFromRefresh(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	pair, _ := issuer.IssuePair(domain.User{ID: 3, Username: "petrov"})
	refresh, err := issuer.Parse(pair.Refresh, RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}

	access, err := issuer.IssueAccess(refresh)
	if err != nil {
		t.Fatalf("IssueAccess returned error: %v", err)
	}
	claims, err := issuer.Parse(access, AccessToken)
	if err != nil {
		t.Fatalf("parse new access: %v", err)
	}
	if id, _ := claims.UserID(); id != 3 || claims.Username != "petrov" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}
