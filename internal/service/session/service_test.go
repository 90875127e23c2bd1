package session

import (
	"testing"
	"time"
)

func TestIssueAndValid(t *testing.T) {
	svc := New(time.Hour)

	token := svc.Issue()
	if token == "" {
		t.Fatal("empty token")
	}
	if !svc.Valid(token) {
		t.Fatalf("issued token %q not valid", token)
	}
	if token2 := svc.Issue(); token2 == token {
		t.Fatal("tokens must be unique")
	}

	for _, bad := range []string{"", "garbage", "1234", "../../etc/passwd"} {
		if svc.Valid(bad) {
			t.Fatalf("Valid(%q) = true, want false", bad)
		}
	}
}

func TestTTLDefaults(t *testing.T) {
	svc := New(0)
	if svc.TTL() != 24*time.Hour {
		t.Fatalf("TTL = %v, want 24h default", svc.TTL())
	}

	svc = New(30 * time.Minute)
	if svc.CookieMaxAge() != 1800 {
		t.Fatalf("CookieMaxAge = %d, want 1800", svc.CookieMaxAge())
	}
}
