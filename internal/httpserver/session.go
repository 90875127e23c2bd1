package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/guestcart"
	sessionsvc "storefront/internal/service/session"
)

const cartContextKey = "guestCart"

// guestSession binds the request to a guest cart. A valid session cookie
// reuses the caller's cart store; anything else gets a fresh token, so a
// tampered or expired cookie degrades to an empty cart rather than an error.
func (h *handlers) guestSession(c *gin.Context) {
	token, err := c.Cookie(sessionsvc.CookieName)
	if err != nil || !h.deps.Sessions.Valid(token) {
		token = h.deps.Sessions.Issue()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionsvc.CookieName, token, h.deps.Sessions.CookieMaxAge(), "/", "", false, true)
	}

	cart := guestcart.New(token, h.deps.Carts.ForToken(token), h.logger)
	c.Set(cartContextKey, cart)
	c.Next()
}

func (h *handlers) cart(c *gin.Context) *guestcart.Cart {
	v, ok := c.Get(cartContextKey)
	if !ok {
		token := h.deps.Sessions.Issue()
		return guestcart.New(token, h.deps.Carts.ForToken(token), h.logger)
	}
	return v.(*guestcart.Cart)
}
