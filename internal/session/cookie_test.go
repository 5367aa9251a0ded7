package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookies_EnsureIssuesAndReads(t *testing.T) {
	c := NewCookies("session", "secret", time.Hour)

	rec := httptest.NewRecorder()
	id := c.Ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	assert.Equal(t, id, c.Ensure(rec2, req))
	assert.Empty(t, rec2.Result().Cookies(), "valid cookie is not reissued")
}

func TestCookies_RejectsTampering(t *testing.T) {
	c := NewCookies("session", "secret", time.Hour)
	other := NewCookies("session", "other-secret", time.Hour)

	id := uuid.NewString()
	cases := map[string]string{
		"no signature":  id,
		"wrong key":     other.sign(id),
		"swapped id":    uuid.NewString() + "." + c.tag(id),
		"not a uuid":    c.sign("admin"),
		"empty":         "",
		"trailing junk": c.sign(id) + "x",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "session", Value: value})
			_, ok := c.Read(req)
			assert.False(t, ok)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: c.sign(id)})
	got, ok := c.Read(req)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestCookies_RandomKeyWhenSecretEmpty(t *testing.T) {
	a := NewCookies("session", "", time.Hour)
	b := NewCookies("session", "", time.Hour)
	id := uuid.NewString()
	assert.NotEqual(t, a.sign(id), b.sign(id))
}
