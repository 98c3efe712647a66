package vtest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieJar_MergesByName(t *testing.T) {
	jar := newCookieJar()
	jar.SetCookies(origin, []*http.Cookie{{Name: "via_sid", Value: "a"}, {Name: "auth", Value: "true"}})
	jar.SetCookies(origin, []*http.Cookie{{Name: "via_sid", Value: "b"}})

	assert.Len(t, jar.GetCookies(origin), 2)
	c, ok := jar.get("via_sid")
	require.True(t, ok)
	assert.Equal(t, "b", c.Value)
}

func TestCookieJar_NegativeMaxAgeDeletes(t *testing.T) {
	jar := newCookieJar()
	jar.SetCookies(origin, []*http.Cookie{{Name: "auth", Value: "true"}})
	jar.SetCookies(origin, []*http.Cookie{{Name: "auth", MaxAge: -1}})

	_, ok := jar.get("auth")
	assert.False(t, ok)
	assert.Empty(t, jar.GetCookies(origin))
}
