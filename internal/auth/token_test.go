package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(TokenConfig{
		Secret: []byte("test-secret"),
		TTL:    ttl,
	})
}

func TestIssueAndVerify(t *testing.T) {
	tm := newTestManager(time.Hour)

	token, err := tm.Issue("m1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	memberID, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if memberID != "m1" {
		t.Errorf("member id = %q, want m1", memberID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm := newTestManager(time.Hour)
	other := NewTokenManager(TokenConfig{Secret: []byte("different"), TTL: time.Hour})

	token, err := tm.Issue("m1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := newTestManager(-time.Minute)

	token, err := tm.Issue("m1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := newTestManager(time.Hour)

	if _, err := tm.Verify("not.a.token"); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm := newTestManager(time.Hour)

	token, err := tm.Issue("m1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Flip a character in the signature segment.
	i := strings.LastIndex(token, ".")
	tampered := token[:i+1] + "AAAA" + token[i+5:]
	if _, err := tm.Verify(tampered); err == nil {
		t.Fatal("expected verification failure for tampered token")
	}
}
