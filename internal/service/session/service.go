package session

import (
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the guest session token.
const CookieName = "guest_session"

// Service issues and vets guest session tokens. Tokens are opaque UUIDs;
// the cart snapshot they key lives in the session repository, so an unknown
// token simply reads as an empty cart.
type Service struct {
	ttl time.Duration
}

func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{ttl: ttl}
}

// Issue returns a fresh session token.
func (s *Service) Issue() string {
	return uuid.NewString()
}

// Valid reports whether token looks like one we issued. Garbage cookie
// values get a fresh session instead of keying arbitrary rows.
func (s *Service) Valid(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// CookieMaxAge is the cookie lifetime in seconds.
func (s *Service) CookieMaxAge() int {
	return int(s.ttl.Seconds())
}
