package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cookies issues and verifies the session cookie.  The value is a random
// uuid followed by an HMAC-SHA256 tag, so ids cannot be forged or chosen by
// the client.
type Cookies struct {
	Name   string
	MaxAge time.Duration
	Secure bool
	key    []byte
}

// NewCookies returns a cookie codec keyed by secret.  An empty secret gets
// a random key, which invalidates existing sessions on every restart.
func NewCookies(name, secret string, maxAge time.Duration) *Cookies {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("session: cannot read random key: " + err.Error())
		}
	}
	return &Cookies{Name: name, MaxAge: maxAge, key: key}
}

// Ensure returns the session id carried by r, issuing a fresh one on w when
// the cookie is absent or fails verification.
func (c *Cookies) Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := c.Read(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    c.sign(id),
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Read returns the verified session id from r.
func (c *Cookies) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return "", false
	}
	id, tag, found := strings.Cut(ck.Value, ".")
	if !found {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(tag), []byte(c.tag(id))) {
		return "", false
	}
	return id, true
}

func (c *Cookies) sign(id string) string { return id + "." + c.tag(id) }

func (c *Cookies) tag(id string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
